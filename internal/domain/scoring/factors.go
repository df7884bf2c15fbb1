package scoring

import (
	"fmt"
	"math"
)

// Factor names used across factor sets and weight tables.
const (
	FactorAudienceSize    = "Audience Size"
	FactorEngagement      = "Engagement"
	FactorIncomeLevel     = "Income Level"
	FactorIncomeStability = "Income Stability"
	FactorViewDuration    = "View Duration"
	FactorDefault         = "Default Score"
)

// neutralScore is returned whenever there is not enough data to judge.
const neutralScore = 50

// ScoreAudienceSize maps a follower/subscriber count to a 0-100 step score.
// The ladder is intentionally stepwise; there is no interpolation between
// rungs.
func ScoreAudienceSize(followerCount int64) int {
	switch {
	case followerCount >= 1_000_000:
		return 100
	case followerCount >= 500_000:
		return 90
	case followerCount >= 100_000:
		return 80
	case followerCount >= 50_000:
		return 70
	case followerCount >= 10_000:
		return 60
	case followerCount >= 5_000:
		return 50
	case followerCount >= 1_000:
		return 40
	case followerCount >= 500:
		return 30
	case followerCount >= 100:
		return 20
	default:
		return 10
	}
}

// ScoreEngagementRate maps an engagement percentage to a step score.
// A 10%+ engagement rate is excellent; below 0.1% bottoms out at 10.
func ScoreEngagementRate(ratePct float64) int {
	switch {
	case ratePct >= 10:
		return 100
	case ratePct >= 7:
		return 90
	case ratePct >= 5:
		return 80
	case ratePct >= 3:
		return 70
	case ratePct >= 2:
		return 60
	case ratePct >= 1.5:
		return 50
	case ratePct >= 1:
		return 40
	case ratePct >= 0.5:
		return 30
	case ratePct >= 0.1:
		return 20
	default:
		return 10
	}
}

// ScoreIncomeLevel maps estimated monthly revenue in USD to a step score.
func ScoreIncomeLevel(monthlyUSD float64) int {
	switch {
	case monthlyUSD >= 20_000:
		return 100
	case monthlyUSD >= 10_000:
		return 90
	case monthlyUSD >= 5_000:
		return 80
	case monthlyUSD >= 3_000:
		return 70
	case monthlyUSD >= 2_000:
		return 60
	case monthlyUSD >= 1_000:
		return 50
	case monthlyUSD >= 500:
		return 40
	case monthlyUSD >= 250:
		return 30
	case monthlyUSD >= 100:
		return 20
	default:
		return 10
	}
}

// ScoreViewDuration maps an average view duration in seconds to a step
// score; the ladder is expressed in minutes.
func ScoreViewDuration(avgDurationSec int64) int {
	durationMin := float64(avgDurationSec) / 60
	switch {
	case durationMin >= 15:
		return 100
	case durationMin >= 12:
		return 90
	case durationMin >= 10:
		return 80
	case durationMin >= 8:
		return 70
	case durationMin >= 6:
		return 60
	case durationMin >= 5:
		return 50
	case durationMin >= 4:
		return 40
	case durationMin >= 3:
		return 30
	case durationMin >= 2:
		return 20
	default:
		return 10
	}
}

// StabilityResult carries the stability score together with the rationale
// that is stored verbatim alongside the factor.
type StabilityResult struct {
	Score       int
	Description string
}

// ScoreIncomeStability scores a revenue history (newest first) by its
// coefficient of variation, then applies a bonus or penalty for the growth
// trend across the window. The resulting score is clamped to [0,100] and
// the description embeds the CV to one decimal place.
func ScoreIncomeStability(earnings []float64) StabilityResult {
	if len(earnings) < 2 {
		return StabilityResult{
			Score:       neutralScore,
			Description: "Not enough historical data for stability assessment",
		}
	}

	var sum float64
	for _, v := range earnings {
		sum += v
	}
	mean := sum / float64(len(earnings))

	var sumSquaredDiff float64
	for _, v := range earnings {
		sumSquaredDiff += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(sumSquaredDiff / float64(len(earnings)))
	cv := (stdDev / mean) * 100

	// Growth across the window: newest against oldest. A zero oldest value
	// yields +Inf and counts as strong growth; an all-zero history yields
	// NaN and falls through to the stable branch.
	oldest := earnings[len(earnings)-1]
	newest := earnings[0]
	growthRate := ((newest - oldest) / oldest) * 100

	var description string
	var bonusPoints int
	switch {
	case growthRate > 0:
		switch {
		case growthRate > 20:
			description = "Strong growth trend (+20%)"
			bonusPoints = 10
		case growthRate > 10:
			description = "Moderate growth trend (+10%)"
			bonusPoints = 5
		default:
			description = "Slight growth trend"
			bonusPoints = 2
		}
	case growthRate < 0:
		switch {
		case growthRate < -20:
			description = "Strong declining trend (-20%)"
			bonusPoints = -10
		case growthRate < -10:
			description = "Moderate declining trend (-10%)"
			bonusPoints = -5
		default:
			description = "Slight declining trend"
			bonusPoints = -2
		}
	default:
		description = "Stable income (no change)"
	}

	var score int
	switch {
	case cv < 5:
		score = 100
	case cv < 10:
		score = 90
	case cv < 15:
		score = 80
	case cv < 20:
		score = 70
	case cv < 30:
		score = 60
	case cv < 40:
		score = 50
	case cv < 50:
		score = 40
	case cv < 60:
		score = 30
	case cv < 80:
		score = 20
	default:
		score = 10
	}

	score += bonusPoints
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return StabilityResult{
		Score:       score,
		Description: fmt.Sprintf("%s (CV: %.1f%%)", description, cv),
	}
}
