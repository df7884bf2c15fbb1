package service

import "errors"

// Sentinel kinds for generation errors. ErrCreatorNotFound lives in the
// repository package; callers use errors.Is against both.
var (
	// ErrNoMetricsFound means the creator exists but has no metrics inside
	// the lookback window. Surfaced to the caller, never retried here.
	ErrNoMetricsFound = errors.New("no metrics found")
)
