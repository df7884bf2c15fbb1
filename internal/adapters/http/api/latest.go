// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// LatestHandler handles latest-score requests.
type LatestHandler struct {
	deps Dependencies
}

// NewLatestHandler creates a new latest handler.
func NewLatestHandler(deps Dependencies) *LatestHandler {
	return &LatestHandler{deps: deps}
}

// HandleGetLatest handles GET /scores/latest/{creator_id} requests.
// A creator without any stored scores yields 404.
func (h *LatestHandler) HandleGetLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	creatorID := strings.TrimPrefix(r.URL.Path, "/scores/latest/")
	if creatorID == "" || strings.Contains(creatorID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	score, err := h.deps.GetLatestScore(r.Context(), creatorID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if score == nil {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toCreditScoreResponse(*score))
}
