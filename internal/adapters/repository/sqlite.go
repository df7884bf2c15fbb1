package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/credora/creatorscore/internal/domain/model"
)

// SQLiteStore implements Store using SQLite via sqlx.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database at path and runs migrations. Use ":memory:"
// for an ephemeral store in tests.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Each pooled connection would otherwise see its own empty in-memory
	// database.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type creatorRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type platformRow struct {
	ID        string `db:"id"`
	CreatorID string `db:"creator_id"`
	Type      string `db:"type"`
	Handle    string `db:"handle"`
}

type metricRow struct {
	ID                  string    `db:"id"`
	CreatorID           string    `db:"creator_id"`
	PlatformID          string    `db:"platform_id"`
	Date                time.Time `db:"date"`
	AudienceSize        int64     `db:"audience_size"`
	EngagementRatePct   float64   `db:"engagement_rate_pct"`
	EstimatedRevenueUSD float64   `db:"estimated_revenue_usd"`
	AvgViewDurationSec  int64     `db:"avg_view_duration_sec"`
	HasViewDuration     bool      `db:"has_view_duration"`
}

type creditScoreRow struct {
	ID           string    `db:"id"`
	CreatorID    string    `db:"creator_id"`
	OverallScore int       `db:"overall_score"`
	Month        string    `db:"month"`
	Timestamp    time.Time `db:"timestamp"`
}

type platformScoreRow struct {
	ID            int64  `db:"id"`
	CreditScoreID string `db:"credit_score_id"`
	PlatformID    string `db:"platform_id"`
	PlatformType  string `db:"platform_type"`
	Score         int    `db:"score"`
	Factors       string `db:"factors"`
}

func (s *SQLiteStore) GetCreator(ctx context.Context, id string) (model.Creator, error) {
	var row creatorRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM creators WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Creator{}, fmt.Errorf("creator %s: %w", id, ErrCreatorNotFound)
	}
	if err != nil {
		return model.Creator{}, fmt.Errorf("get creator %s: %w", id, err)
	}
	return model.Creator{ID: row.ID, Name: row.Name}, nil
}

func (s *SQLiteStore) ListCreators(ctx context.Context) ([]model.Creator, error) {
	var rows []creatorRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM creators ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}
	creators := make([]model.Creator, len(rows))
	for i, r := range rows {
		creators[i] = model.Creator{ID: r.ID, Name: r.Name}
	}
	return creators, nil
}

func (s *SQLiteStore) ListPlatforms(ctx context.Context, creatorID string) ([]model.Platform, error) {
	var rows []platformRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM platforms WHERE creator_id = ? ORDER BY id", creatorID)
	if err != nil {
		return nil, fmt.Errorf("list platforms for %s: %w", creatorID, err)
	}
	platforms := make([]model.Platform, len(rows))
	for i, r := range rows {
		platforms[i] = model.Platform{
			ID:        r.ID,
			CreatorID: r.CreatorID,
			Type:      model.PlatformType(r.Type),
			Handle:    r.Handle,
		}
	}
	return platforms, nil
}

func (s *SQLiteStore) ListMetrics(ctx context.Context, creatorID string, from, to time.Time) ([]model.Metric, error) {
	var rows []metricRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM metrics
		WHERE creator_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC`, creatorID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("list metrics for %s: %w", creatorID, err)
	}
	metrics := make([]model.Metric, len(rows))
	for i, r := range rows {
		metrics[i] = model.Metric{
			ID:                  r.ID,
			CreatorID:           r.CreatorID,
			PlatformID:          r.PlatformID,
			Date:                r.Date.UTC(),
			AudienceSize:        r.AudienceSize,
			EngagementRatePct:   r.EngagementRatePct,
			EstimatedRevenueUSD: r.EstimatedRevenueUSD,
			AvgViewDurationSec:  r.AvgViewDurationSec,
			HasViewDuration:     r.HasViewDuration,
		}
	}
	return metrics, nil
}

func (s *SQLiteStore) ListCreditScores(ctx context.Context, creatorID string) ([]model.CreditScore, error) {
	var scoreRows []creditScoreRow
	err := s.db.SelectContext(ctx, &scoreRows, `
		SELECT * FROM credit_scores
		WHERE creator_id = ?
		ORDER BY timestamp DESC`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list credit scores for %s: %w", creatorID, err)
	}

	scores := make([]model.CreditScore, 0, len(scoreRows))
	for _, sr := range scoreRows {
		var psRows []platformScoreRow
		err := s.db.SelectContext(ctx, &psRows,
			"SELECT * FROM platform_scores WHERE credit_score_id = ? ORDER BY id", sr.ID)
		if err != nil {
			return nil, fmt.Errorf("list platform scores for %s: %w", sr.ID, err)
		}

		platformScores := make([]model.PlatformScore, 0, len(psRows))
		for _, pr := range psRows {
			factors, err := DecodeFactors(pr.Factors)
			if err != nil {
				return nil, fmt.Errorf("score %s platform %s: %w", sr.ID, pr.PlatformID, err)
			}
			platformScores = append(platformScores, model.PlatformScore{
				PlatformID:   pr.PlatformID,
				PlatformType: model.PlatformType(pr.PlatformType),
				Score:        pr.Score,
				Factors:      factors,
			})
		}

		scores = append(scores, model.CreditScore{
			ID:             sr.ID,
			CreatorID:      sr.CreatorID,
			OverallScore:   sr.OverallScore,
			PlatformScores: platformScores,
			Timestamp:      sr.Timestamp.UTC(),
		})
	}
	return scores, nil
}

func (s *SQLiteStore) CreateCreditScore(ctx context.Context, score model.CreditScore) (model.CreditScore, error) {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	month := model.MonthKey(score.Timestamp)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.CreditScore{}, fmt.Errorf("begin credit score tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credit_scores (id, creator_id, overall_score, month, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		score.ID, score.CreatorID, score.OverallScore, month, score.Timestamp.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return model.CreditScore{}, fmt.Errorf("creator %s month %s: %w",
				score.CreatorID, month, ErrMonthAlreadyScored)
		}
		return model.CreditScore{}, fmt.Errorf("insert credit score: %w", err)
	}

	for _, ps := range score.PlatformScores {
		factors, err := EncodeFactors(ps.Factors)
		if err != nil {
			return model.CreditScore{}, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO platform_scores (credit_score_id, platform_id, platform_type, score, factors)
			VALUES (?, ?, ?, ?, ?)`,
			score.ID, ps.PlatformID, string(ps.PlatformType), ps.Score, factors)
		if err != nil {
			return model.CreditScore{}, fmt.Errorf("insert platform score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.CreditScore{}, fmt.Errorf("commit credit score: %w", err)
	}
	return score, nil
}

func (s *SQLiteStore) CreateCreator(ctx context.Context, c model.Creator) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO creators (id, name) VALUES (?, ?)", c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("create creator %s: %w", c.Name, err)
	}
	return nil
}

func (s *SQLiteStore) CreatePlatform(ctx context.Context, p model.Platform) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO platforms (id, creator_id, type, handle) VALUES (?, ?, ?, ?)",
		p.ID, p.CreatorID, string(p.Type), p.Handle)
	if err != nil {
		return fmt.Errorf("create platform %s/%s: %w", p.Type, p.Handle, err)
	}
	return nil
}

func (s *SQLiteStore) CreateMetric(ctx context.Context, m model.Metric) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metrics (id, creator_id, platform_id, date, audience_size,
			engagement_rate_pct, estimated_revenue_usd, avg_view_duration_sec, has_view_duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CreatorID, m.PlatformID, m.Date.UTC(), m.AudienceSize,
		m.EngagementRatePct, m.EstimatedRevenueUSD, m.AvgViewDurationSec, m.HasViewDuration)
	if err != nil {
		return fmt.Errorf("create metric for platform %s: %w", m.PlatformID, err)
	}
	return nil
}

func (s *SQLiteStore) CountCreators(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM creators"); err != nil {
		return 0, fmt.Errorf("count creators: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) CountCreditScores(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM credit_scores"); err != nil {
		return 0, fmt.Errorf("count credit scores: %w", err)
	}
	return n, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite surfaces these as plain errors carrying the
// constraint message, so string inspection is the portable check.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
