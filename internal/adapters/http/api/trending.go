// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

const defaultTrendingLimit = 20

// TrendingDependencies defines the interface for trending queries.
type TrendingDependencies interface {
	Trending(ctx context.Context, limit int) ([]TrendingEntry, error)
}

// TrendingHandler handles trending player requests.
type TrendingHandler struct {
	deps     TrendingDependencies
	maxLimit int
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(deps TrendingDependencies, maxLimit int) *TrendingHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &TrendingHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetTrending handles GET /api/trending?limit=N requests.
func (h *TrendingHandler) HandleGetTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := defaultTrendingLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		limit = n
	}
	// Oversized limits are capped, not rejected.
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	entries, err := h.deps.Trending(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if entries == nil {
		entries = []TrendingEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
