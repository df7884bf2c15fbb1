// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/credora/creatorscore/internal/adapters/repository"
	service "github.com/credora/creatorscore/internal/app"
	"github.com/credora/creatorscore/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// GenerateScores creates any missing monthly scores and returns the
	// merged history, newest first.
	GenerateScores(ctx context.Context, creatorID string) ([]model.CreditScore, error)

	// GetLatestScore returns the rolling latest view, or nil when the
	// creator has no scores yet.
	GetLatestScore(ctx context.Context, creatorID string) (*model.CreditScore, error)

	// GetScoreHistory returns every stored score, newest first.
	GetScoreHistory(ctx context.Context, creatorID string) ([]model.CreditScore, error)
}

// StatsProvider exposes service statistics for the /stats endpoint.
type StatsProvider interface {
	Stats(ctx context.Context) map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	generateHandler *GenerateHandler
	latestHandler   *LatestHandler
	historyHandler  *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		generateHandler: NewGenerateHandler(deps),
		latestHandler:   NewLatestHandler(deps),
		historyHandler:  NewHistoryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores/generate/", MetricsMiddleware(s.generateHandler.HandleGenerate, "generate"))
	mux.HandleFunc("/scores/latest/", MetricsMiddleware(s.latestHandler.HandleGetLatest, "latest"))
	mux.HandleFunc("/scores/history/", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
}

// scoringFactorResponse mirrors the stored factor shape.
type scoringFactorResponse struct {
	Factor      string  `json:"factor"`
	Score       int     `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// platformScoreResponse is the per-platform slice of a credit score.
type platformScoreResponse struct {
	PlatformID   string                  `json:"platform_id"`
	PlatformType string                  `json:"platform_type"`
	Score        int                     `json:"score"`
	Factors      []scoringFactorResponse `json:"factors"`
}

// creditScoreResponse mirrors the API schema for credit scores.
type creditScoreResponse struct {
	CreatorID      string                  `json:"creator_id"`
	OverallScore   int                     `json:"overall_score"`
	PlatformScores []platformScoreResponse `json:"platform_scores"`
	Timestamp      string                  `json:"timestamp"`
}

func toCreditScoreResponse(cs model.CreditScore) creditScoreResponse {
	platformScores := make([]platformScoreResponse, len(cs.PlatformScores))
	for i, ps := range cs.PlatformScores {
		factors := make([]scoringFactorResponse, len(ps.Factors))
		for j, f := range ps.Factors {
			factors[j] = scoringFactorResponse{
				Factor:      f.Factor,
				Score:       f.Score,
				Weight:      f.Weight,
				Description: f.Description,
			}
		}
		platformScores[i] = platformScoreResponse{
			PlatformID:   ps.PlatformID,
			PlatformType: string(ps.PlatformType),
			Score:        ps.Score,
			Factors:      factors,
		}
	}
	return creditScoreResponse{
		CreatorID:      cs.CreatorID,
		OverallScore:   cs.OverallScore,
		PlatformScores: platformScores,
		Timestamp:      cs.Timestamp.UTC().Format(time.RFC3339),
	}
}

func toCreditScoreResponses(scores []model.CreditScore) []creditScoreResponse {
	out := make([]creditScoreResponse, len(scores))
	for i, cs := range scores {
		out[i] = toCreditScoreResponse(cs)
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found conditions to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrCreatorNotFound) ||
		errors.Is(err, service.ErrNoMetricsFound)
}
