// Package scoring turns raw platform metrics into weighted factor sets,
// per-platform scores, and a blended overall credit score.
package scoring

import (
	"fmt"
	"math"

	"github.com/credora/creatorscore/internal/domain/model"
)

// maxStabilityWindow caps how many historical snapshots feed the income
// stability factor.
const maxStabilityWindow = 6

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights replaces the default weighting tables.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// Engine computes factor sets and scores using injected weighting tables.
// All methods are pure with respect to the Engine; it is safe for
// concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine creates an Engine with the production tables unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PlatformFactors builds the weighted factor set for one platform from its
// metric history, newest first. The first metric is treated as the current
// snapshot; up to six feed the stability factor. An empty history yields a
// single neutral default factor.
func (e *Engine) PlatformFactors(platformType model.PlatformType, metrics []model.Metric) []model.ScoringFactor {
	if len(metrics) == 0 {
		return []model.ScoringFactor{{
			Factor:      FactorDefault,
			Score:       neutralScore,
			Weight:      1.0,
			Description: "Default score due to insufficient data",
		}}
	}

	latest := metrics[0]
	hasHistory := len(metrics) > 1
	window := metrics
	if len(window) > maxStabilityWindow {
		window = window[:maxStabilityWindow]
	}

	factors := []model.ScoringFactor{
		{
			Factor:      FactorAudienceSize,
			Score:       ScoreAudienceSize(latest.AudienceSize),
			Weight:      e.weights.Base[FactorAudienceSize],
			Description: fmt.Sprintf("Based on audience of %d", latest.AudienceSize),
		},
		{
			Factor:      FactorEngagement,
			Score:       ScoreEngagementRate(latest.EngagementRatePct),
			Weight:      e.weights.Base[FactorEngagement],
			Description: fmt.Sprintf("Based on engagement rate of %.1f%%", latest.EngagementRatePct),
		},
		{
			Factor:      FactorIncomeLevel,
			Score:       ScoreIncomeLevel(latest.EstimatedRevenueUSD),
			Weight:      e.weights.Base[FactorIncomeLevel],
			Description: fmt.Sprintf("Based on monthly revenue of $%.2f", latest.EstimatedRevenueUSD),
		},
	}

	if hasHistory {
		revenue := make([]float64, len(window))
		for i, m := range window {
			revenue[i] = m.EstimatedRevenueUSD
		}
		stability := ScoreIncomeStability(revenue)
		factors = append(factors, model.ScoringFactor{
			Factor:      FactorIncomeStability,
			Score:       stability.Score,
			Weight:      e.weights.Base[FactorIncomeStability],
			Description: stability.Description,
		})
	}

	switch platformType {
	case model.PlatformVideo:
		// The video override only kicks in when duration data exists;
		// otherwise video platforms keep the base weights.
		if latest.HasViewDuration {
			factors = append(factors, model.ScoringFactor{
				Factor:      FactorViewDuration,
				Score:       ScoreViewDuration(latest.AvgViewDurationSec),
				Weight:      e.weights.Base[FactorViewDuration],
				Description: fmt.Sprintf("Based on avg view duration of %d minutes", int(math.Round(float64(latest.AvgViewDurationSec)/60))),
			})
			applyOverride(factors, e.weights.Overrides[model.PlatformVideo])
		}
	default:
		applyOverride(factors, e.weights.Overrides[platformType])
	}

	normalizeWeights(factors)
	return factors
}

// applyOverride replaces the weight of each factor present in the override
// table. Factors absent from the table keep their current weight.
func applyOverride(factors []model.ScoringFactor, override map[string]float64) {
	if override == nil {
		return
	}
	for i := range factors {
		if w, ok := override[factors[i].Factor]; ok {
			factors[i].Weight = w
		}
	}
}

// normalizeWeights rescales weights to sum to 1.0 whenever the total
// deviates by more than 0.01. Override tables do not sum cleanly when some
// factors are absent (e.g. no stability history), so this guard keeps the
// weighted average honest.
func normalizeWeights(factors []model.ScoringFactor) {
	var total float64
	for _, f := range factors {
		total += f.Weight
	}
	if total > 0 && math.Abs(total-1.0) > 0.01 {
		for i := range factors {
			factors[i].Weight /= total
		}
	}
}

// PlatformScore reduces a factor set to a single weighted-average score in
// [0,100]. A degenerate zero-weight set scores a neutral 50.
func (e *Engine) PlatformScore(factors []model.ScoringFactor) int {
	var totalWeight, weightedScore float64
	for _, f := range factors {
		totalWeight += f.Weight
		weightedScore += float64(f.Score) * f.Weight
	}
	if totalWeight <= 0 {
		return neutralScore
	}
	return int(math.Round(weightedScore / totalWeight))
}

// ScorePlatform builds the full scored result for one platform.
func (e *Engine) ScorePlatform(platform model.Platform, metrics []model.Metric) model.PlatformScore {
	factors := e.PlatformFactors(platform.Type, metrics)
	return model.PlatformScore{
		PlatformID:   platform.ID,
		PlatformType: platform.Type,
		Score:        e.PlatformScore(factors),
		Factors:      factors,
	}
}

// OverallScore blends platform scores into one overall score using the
// platform reliability table. A creator with no platform scores gets a
// neutral 50 rather than an error.
func (e *Engine) OverallScore(platformScores []model.PlatformScore) int {
	var totalWeight, weightedScore float64
	for _, ps := range platformScores {
		weight, ok := e.weights.Reliability[ps.PlatformType]
		if !ok {
			weight = e.weights.DefaultReliability
		}
		totalWeight += weight
		weightedScore += float64(ps.Score) * weight
	}
	if totalWeight <= 0 {
		return neutralScore
	}
	return int(math.Round(weightedScore / totalWeight))
}
