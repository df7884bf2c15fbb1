// Package model contains domain models passed between layers.
package model

import "time"

// PlatformType identifies the kind of connected platform.
type PlatformType string

// Supported platform types.
const (
	PlatformVideo      PlatformType = "VIDEO"
	PlatformMembership PlatformType = "MEMBERSHIP"
	PlatformPhoto      PlatformType = "PHOTO"
)

// Creator is the subject being scored; it owns platforms and metrics.
type Creator struct {
	ID   string
	Name string
}

// Platform is a connected external account/channel of a specific type.
type Platform struct {
	ID        string
	CreatorID string
	Type      PlatformType
	Handle    string
}

// Metric is one month's raw performance snapshot for a creator's platform.
// Immutable once recorded; the scoring engine only reads these.
type Metric struct {
	ID                  string
	CreatorID           string
	PlatformID          string
	Date                time.Time // month-granularity timestamp
	AudienceSize        int64     // followers/subscribers/patrons
	EngagementRatePct   float64   // percentage, e.g. 3.5 means 3.5%
	EstimatedRevenueUSD float64
	AvgViewDurationSec  int64 // 0 when the platform has no duration data
	HasViewDuration     bool  // whether AvgViewDurationSec is meaningful
}

// ScoringFactor is a named, weighted sub-score derived from one aspect of a
// metric. Weights within a factor set sum to 1.0 after normalization.
type ScoringFactor struct {
	Factor      string  `json:"factor"`
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// PlatformScore is the scored result for a single platform within one
// generated credit score. It never outlives its parent CreditScore.
type PlatformScore struct {
	PlatformID   string
	PlatformType PlatformType
	Score        int
	Factors      []ScoringFactor
}

// CreditScore is the persisted, month-scoped result of running the engine
// for one creator. At most one exists per (creator, calendar month).
type CreditScore struct {
	ID             string
	CreatorID      string
	OverallScore   int
	PlatformScores []PlatformScore
	Timestamp      time.Time // first day of the scored month
}

// MonthKey returns the calendar-month bucket key for t, e.g. "2025-04".
// Keys derive from the metric date, never from the wall clock of a run.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MonthStart returns the first instant of t's calendar month in UTC.
// Generated scores are timestamped with this value.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last instant before the next calendar month starts.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
