package scoring

import "github.com/credora/creatorscore/internal/domain/model"

// Weights bundles every tunable table the engine uses. Tables are plain
// values handed to the engine at construction so tests can substitute
// alternates; nothing reads them as ambient state.
type Weights struct {
	// Base maps factor names to their default weights before any
	// platform-specific override is applied.
	Base map[string]float64

	// Overrides replaces base weights per platform type. The VIDEO
	// override only takes effect when view-duration data is present.
	Overrides map[model.PlatformType]map[string]float64

	// Reliability weighs each platform type when blending platform
	// scores into the overall score. Applied per occurrence, never
	// renormalized between platforms.
	Reliability map[model.PlatformType]float64

	// DefaultReliability is used for platform types missing from
	// Reliability.
	DefaultReliability float64
}

// DefaultWeights returns the production weighting tables.
//
// Membership platforms carry recurring income and dominate the overall
// blend; photo platforms are engagement-heavy but a weak income signal.
func DefaultWeights() Weights {
	return Weights{
		Base: map[string]float64{
			FactorAudienceSize:    0.25,
			FactorEngagement:      0.30,
			FactorIncomeLevel:     0.25,
			FactorIncomeStability: 0.20,
			FactorViewDuration:    0.15,
		},
		Overrides: map[model.PlatformType]map[string]float64{
			model.PlatformVideo: {
				FactorAudienceSize:    0.20,
				FactorEngagement:      0.30,
				FactorIncomeLevel:     0.20,
				FactorIncomeStability: 0.15,
				FactorViewDuration:    0.15,
			},
			model.PlatformMembership: {
				FactorAudienceSize:    0.15,
				FactorEngagement:      0.15,
				FactorIncomeLevel:     0.35,
				FactorIncomeStability: 0.35,
			},
			model.PlatformPhoto: {
				FactorAudienceSize:    0.30,
				FactorEngagement:      0.50,
				FactorIncomeLevel:     0.10,
				FactorIncomeStability: 0.10,
			},
		},
		Reliability: map[model.PlatformType]float64{
			model.PlatformMembership: 0.50,
			model.PlatformVideo:      0.35,
			model.PlatformPhoto:      0.15,
		},
		DefaultReliability: 0.10,
	}
}
