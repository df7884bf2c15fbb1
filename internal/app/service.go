// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the scheduler.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/credora/creatorscore/internal/adapters/repository"
	"github.com/credora/creatorscore/internal/domain/model"
	"github.com/credora/creatorscore/internal/domain/scoring"
	"github.com/credora/creatorscore/pkg/logger"
	"github.com/credora/creatorscore/pkg/metrics"
)

// Default orchestration constants.
const (
	defaultLookbackMonths = 12 // trailing metric window for generation
	defaultLatestWindow   = 3  // months averaged by the latest view
	defaultBatchWorkers   = 4  // concurrent creators in a batch run
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEngine replaces the scoring engine, e.g. with alternate weight tables.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithLookbackMonths bounds the trailing metric window.
func WithLookbackMonths(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.lookbackMonths = months
		}
	}
}

// WithLatestWindow sets how many recent months the latest view averages.
func WithLatestWindow(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.latestWindow = months
		}
	}
}

// WithBatchWorkers bounds concurrency for batch generation.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// Service orchestrates monthly credit score generation and reads.
type Service struct {
	store  repository.Store
	engine *scoring.Engine
	locks  *creatorLocks

	lookbackMonths int
	latestWindow   int
	batchWorkers   int

	logger logger.Logger
}

// New constructs a Service around the given store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:          store,
		engine:         scoring.NewEngine(),
		locks:          newCreatorLocks(),
		lookbackMonths: defaultLookbackMonths,
		latestWindow:   defaultLatestWindow,
		batchWorkers:   defaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// GenerateScores buckets the creator's recent metrics by calendar month,
// generates and persists one credit score for every month that does not
// have one yet, and returns the full merged history newest first.
//
// Generation is serialized per creator; the store's unique month constraint
// catches anything that slips past the pre-check, and such conflicts are
// treated as already-generated skips.
func (s *Service) GenerateScores(ctx context.Context, creatorID string) ([]model.CreditScore, error) {
	unlock := s.locks.acquire(creatorID)
	defer unlock()

	start := time.Now()
	defer func() {
		metrics.RecordGenerationDuration(float64(time.Since(start).Milliseconds()))
	}()

	creator, err := s.store.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	from := now.AddDate(0, -s.lookbackMonths, 0)
	allMetrics, err := s.store.ListMetrics(ctx, creatorID, from, now)
	if err != nil {
		return nil, err
	}
	if len(allMetrics) == 0 {
		return nil, fmt.Errorf("creator %s: %w", creatorID, ErrNoMetricsFound)
	}

	platforms, err := s.store.ListPlatforms(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	// Bucket metrics by calendar month, preserving first-encounter order.
	monthMetrics := make(map[string][]model.Metric)
	var monthOrder []string
	for _, m := range allMetrics {
		key := model.MonthKey(m.Date)
		if _, ok := monthMetrics[key]; !ok {
			monthOrder = append(monthOrder, key)
		}
		monthMetrics[key] = append(monthMetrics[key], m)
	}

	existing, err := s.store.ListCreditScores(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	scoredMonths := make(map[string]bool, len(existing))
	for _, cs := range existing {
		scoredMonths[model.MonthKey(cs.Timestamp)] = true
	}

	merged := append([]model.CreditScore(nil), existing...)
	for _, monthKey := range monthOrder {
		if scoredMonths[monthKey] {
			metrics.RecordMonthAlreadyScored()
			continue
		}

		bucket := monthMetrics[monthKey]
		monthStart := model.MonthStart(bucket[0].Date)

		created, err := s.generateMonth(ctx, creator, platforms, allMetrics, bucket, monthStart)
		if err != nil {
			if errors.Is(err, repository.ErrMonthAlreadyScored) {
				// A concurrent run got there first; that is success.
				metrics.RecordMonthAlreadyScored()
				s.logger.Debug(ctx, "month already scored, skipping",
					logger.String("creatorID", creatorID),
					logger.String("month", monthKey),
				)
				continue
			}
			metrics.RecordGenerationError()
			s.logger.Error(ctx, "failed to persist month score",
				logger.String("creatorID", creatorID),
				logger.String("month", monthKey),
				logger.Error(err),
			)
			continue
		}
		if created == nil {
			// Metrics existed but none belonged to a connected platform.
			// The month stays eligible for a future run.
			metrics.RecordEmptyMonth()
			s.logger.Warn(ctx, "month produced no platform scores",
				logger.String("creatorID", creatorID),
				logger.String("month", monthKey),
			)
			continue
		}

		metrics.RecordScoreGenerated()
		merged = append(merged, *created)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged, nil
}

// generateMonth scores every platform that has metrics in the bucketed
// month and persists the resulting credit score dated to the month's first
// day. Returns nil without error when no platform produced a score.
func (s *Service) generateMonth(
	ctx context.Context,
	creator model.Creator,
	platforms []model.Platform,
	allMetrics []model.Metric,
	bucket []model.Metric,
	monthStart time.Time,
) (*model.CreditScore, error) {
	monthEnd := model.MonthEnd(monthStart)

	inMonth := make(map[string]bool, len(bucket))
	for _, m := range bucket {
		inMonth[m.PlatformID] = true
	}

	var platformScores []model.PlatformScore
	for _, p := range platforms {
		if !inMonth[p.ID] {
			continue
		}
		// History for this platform as seen from the scored month: newest
		// first, nothing dated after the month's end. The head is the
		// month's own snapshot; older months feed the stability factor.
		var history []model.Metric
		for _, m := range allMetrics {
			if m.PlatformID == p.ID && !m.Date.After(monthEnd) {
				history = append(history, m)
			}
		}
		platformScores = append(platformScores, s.engine.ScorePlatform(p, history))
	}

	if len(platformScores) == 0 {
		return nil, nil
	}

	created, err := s.store.CreateCreditScore(ctx, model.CreditScore{
		CreatorID:      creator.ID,
		OverallScore:   s.engine.OverallScore(platformScores),
		PlatformScores: platformScores,
		Timestamp:      monthStart,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetScoreHistory returns every stored credit score for the creator,
// newest first, with factor breakdowns expanded. The slice may be empty.
func (s *Service) GetScoreHistory(ctx context.Context, creatorID string) ([]model.CreditScore, error) {
	return s.store.ListCreditScores(ctx, creatorID)
}

// GetLatestScore aggregates the most recent monthly scores (up to the
// configured window, default three) into a single rolling view, or nil
// when the creator has no scores.
//
// Numeric scores are averaged per platform, but the factor breakdown is
// taken verbatim from each platform's newest month. The shown factor
// scores therefore do not necessarily average to the shown platform score;
// the breakdown answers "why was the latest month scored this way", not
// "why this average".
func (s *Service) GetLatestScore(ctx context.Context, creatorID string) (*model.CreditScore, error) {
	history, err := s.store.ListCreditScores(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}

	window := history
	if len(window) > s.latestWindow {
		window = window[:s.latestWindow]
	}

	var overallSum float64
	for _, cs := range window {
		overallSum += float64(cs.OverallScore)
	}

	type agg struct {
		sum   float64
		count int
		first model.PlatformScore // newest occurrence, factors kept verbatim
	}
	byPlatform := make(map[string]*agg)
	var order []string
	for _, cs := range window {
		for _, ps := range cs.PlatformScores {
			a, ok := byPlatform[ps.PlatformID]
			if !ok {
				a = &agg{first: ps}
				byPlatform[ps.PlatformID] = a
				order = append(order, ps.PlatformID)
			}
			a.sum += float64(ps.Score)
			a.count++
		}
	}

	platformScores := make([]model.PlatformScore, 0, len(order))
	for _, id := range order {
		a := byPlatform[id]
		platformScores = append(platformScores, model.PlatformScore{
			PlatformID:   a.first.PlatformID,
			PlatformType: a.first.PlatformType,
			Score:        int(math.Round(a.sum / float64(a.count))),
			Factors:      a.first.Factors,
		})
	}

	return &model.CreditScore{
		CreatorID:      creatorID,
		OverallScore:   int(math.Round(overallSum / float64(len(window)))),
		PlatformScores: platformScores,
		Timestamp:      time.Now().UTC(),
	}, nil
}

// GenerateAll runs generation for every creator with bounded concurrency.
// One creator's failure never aborts the others; failures are logged and
// counted. Returns how many creators completed without error.
func (s *Service) GenerateAll(ctx context.Context) (int, error) {
	creators, err := s.store.ListCreators(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "starting batch score generation",
		logger.Int("creators", len(creators)),
	)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	sem := make(chan struct{}, s.batchWorkers)
	for _, creator := range creators {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(c model.Creator) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := s.GenerateScores(ctx, c.ID); err != nil {
				metrics.RecordGenerationError()
				s.logger.Error(ctx, "batch generation failed for creator",
					logger.String("creatorID", c.ID),
					logger.String("name", c.Name),
					logger.Error(err),
				)
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(creator)
	}
	wg.Wait()

	s.updateStoreGauges(ctx)
	s.logger.Info(ctx, "batch score generation completed",
		logger.Int("succeeded", succeeded),
		logger.Int("total", len(creators)),
	)
	return succeeded, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"lookbackMonths": s.lookbackMonths,
		"latestWindow":   s.latestWindow,
		"batchWorkers":   s.batchWorkers,
	}
	if n, err := s.store.CountCreators(ctx); err == nil {
		stats["creators"] = n
		metrics.UpdateTotalCreators(n)
	}
	if n, err := s.store.CountCreditScores(ctx); err == nil {
		stats["creditScores"] = n
		metrics.UpdateTotalScores(n)
	}
	return stats
}

func (s *Service) updateStoreGauges(ctx context.Context) {
	if n, err := s.store.CountCreators(ctx); err == nil {
		metrics.UpdateTotalCreators(n)
	}
	if n, err := s.store.CountCreditScores(ctx); err == nil {
		metrics.UpdateTotalScores(n)
	}
}
