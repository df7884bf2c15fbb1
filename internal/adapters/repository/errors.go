package repository

import "errors"

// Sentinel kinds for store errors. Callers branch with errors.Is.
var (
	ErrCreatorNotFound = errors.New("creator not found")

	// ErrMonthAlreadyScored maps the unique (creator, month) constraint.
	// The generation loop treats it as "already generated, skip".
	ErrMonthAlreadyScored = errors.New("credit score for month already exists")
)
