// Package mocking generates synthetic monthly metrics so the scoring
// engine has data to work with before real platform ingestion exists.
package mocking

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/credora/creatorscore/internal/domain/model"
)

// profile holds per-platform-type baselines for synthetic data.
type profile struct {
	audienceMin, audienceMax int64
	engagementMin, engMax    float64
	revenueMin, revenueMax   float64
	durationMin, durationMax int64 // seconds; zero means no duration data
}

var profiles = map[model.PlatformType]profile{
	model.PlatformVideo: {
		audienceMin: 5_000, audienceMax: 250_000,
		engagementMin: 1.0, engMax: 6.0,
		revenueMin: 500, revenueMax: 8_000,
		durationMin: 120, durationMax: 900,
	},
	model.PlatformMembership: {
		audienceMin: 100, audienceMax: 5_000,
		engagementMin: 5.0, engMax: 15.0,
		revenueMin: 1_000, revenueMax: 10_000,
	},
	model.PlatformPhoto: {
		audienceMin: 10_000, audienceMax: 500_000,
		engagementMin: 1.0, engMax: 8.0,
		revenueMin: 100, revenueMax: 2_000,
	},
}

// defaultProfile covers platform types without a tuned baseline.
var defaultProfile = profile{
	audienceMin: 1_000, audienceMax: 50_000,
	engagementMin: 0.5, engMax: 5.0,
	revenueMin: 100, revenueMax: 3_000,
}

// Generator produces deterministic synthetic metrics from a seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. The same seed reproduces the same
// metric series, which keeps seeded demo data stable across runs.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // synthetic data only
}

// MetricsForRange generates one metric per calendar month from `from` to
// `to` inclusive for the platform. Values drift month over month: audience
// and revenue trend gently upward with noise, mimicking a growing creator.
func (g *Generator) MetricsForRange(p model.Platform, from, to time.Time) []model.Metric {
	prof, ok := profiles[p.Type]
	if !ok {
		prof = defaultProfile
	}

	audience := g.rangeInt64(prof.audienceMin, prof.audienceMax)
	revenue := g.rangeFloat(prof.revenueMin, prof.revenueMax)

	var out []model.Metric
	for month := model.MonthStart(from); !month.After(model.MonthStart(to)); month = month.AddDate(0, 1, 0) {
		// Gentle growth with noise: -5%..+15% per month.
		audience = int64(float64(audience) * (0.95 + g.rng.Float64()*0.20))
		revenue *= 0.95 + g.rng.Float64()*0.20

		m := model.Metric{
			ID:                  uuid.NewString(),
			CreatorID:           p.CreatorID,
			PlatformID:          p.ID,
			Date:                month,
			AudienceSize:        audience,
			EngagementRatePct:   g.rangeFloat(prof.engagementMin, prof.engMax),
			EstimatedRevenueUSD: revenue,
		}
		if prof.durationMax > 0 {
			m.AvgViewDurationSec = g.rangeInt64(prof.durationMin, prof.durationMax)
			m.HasViewDuration = true
		}
		out = append(out, m)
	}
	return out
}

func (g *Generator) rangeInt64(min, max int64) int64 {
	return min + g.rng.Int63n(max-min+1)
}

func (g *Generator) rangeFloat(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}
