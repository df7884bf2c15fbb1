// Package repository defines the persistence interface for creators,
// platforms, metrics and generated credit scores.
package repository

import (
	"context"
	"time"

	"github.com/credora/creatorscore/internal/domain/model"
)

// Store provides read access to metrics and write access for generated
// scores. The scoring engine never mutates metrics; metric writes exist for
// ingestion and seeding.
type Store interface {
	// GetCreator resolves a creator by id.
	// Returns ErrCreatorNotFound if the id is unknown.
	GetCreator(ctx context.Context, id string) (model.Creator, error)

	// ListCreators returns all creators, used by batch generation.
	ListCreators(ctx context.Context) ([]model.Creator, error)

	// ListPlatforms returns the creator's connected platforms.
	ListPlatforms(ctx context.Context, creatorID string) ([]model.Platform, error)

	// ListMetrics returns the creator's metrics with dates in [from, to],
	// ordered newest first.
	ListMetrics(ctx context.Context, creatorID string, from, to time.Time) ([]model.Metric, error)

	// ListCreditScores returns all stored scores for the creator, newest
	// first, with factor breakdowns decoded.
	ListCreditScores(ctx context.Context, creatorID string) ([]model.CreditScore, error)

	// CreateCreditScore persists a score and all its platform scores
	// atomically. Returns ErrMonthAlreadyScored when a score for the same
	// creator and calendar month already exists.
	CreateCreditScore(ctx context.Context, score model.CreditScore) (model.CreditScore, error)

	// Ingestion-side writes, used by seeding and platform sync.
	CreateCreator(ctx context.Context, c model.Creator) error
	CreatePlatform(ctx context.Context, p model.Platform) error
	CreateMetric(ctx context.Context, m model.Metric) error

	// Counts feed the store gauges and the /stats endpoint.
	CountCreators(ctx context.Context) (int, error)
	CountCreditScores(ctx context.Context) (int, error)

	Close() error
}
