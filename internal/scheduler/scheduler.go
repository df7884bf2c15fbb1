// Package scheduler runs periodic batch score generation.
package scheduler

import (
	"context"
	"time"

	"github.com/credora/creatorscore/pkg/logger"
)

// Generator is the slice of the service the scheduler drives.
type Generator interface {
	GenerateAll(ctx context.Context) (int, error)
}

// Scheduler triggers batch generation on a fixed interval. A creator's
// failure inside a run never aborts the run; the service isolates those.
type Scheduler struct {
	generator Generator
	interval  time.Duration
	logger    logger.Logger
}

// Option applies a configuration option to the Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between runs.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a scheduler around the generator.
func New(generator Generator, opts ...Option) *Scheduler {
	s := &Scheduler{
		generator: generator,
		interval:  24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("scheduler")
	}
	return s
}

// Run blocks until ctx is cancelled, generating immediately on start and
// then once per interval.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "scheduler running",
		logger.String("interval", s.interval.String()),
	)
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	succeeded, err := s.generator.GenerateAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "batch generation run failed", logger.Error(err))
		return
	}
	s.logger.Info(ctx, "batch generation run finished",
		logger.Int("succeeded", succeeded),
	)
}
