// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// RumorsDependencies defines the interface for rumor listing.
type RumorsDependencies interface {
	Rumors(ctx context.Context) []RumorView
}

// RumorsHandler handles rumor list requests.
type RumorsHandler struct {
	deps RumorsDependencies
}

// NewRumorsHandler creates a new rumors handler.
func NewRumorsHandler(deps RumorsDependencies) *RumorsHandler {
	return &RumorsHandler{deps: deps}
}

// HandleGetRumors handles GET /api/rumors requests, returning the items
// retrieved by the most recent sync cycle, newest first.
func (h *RumorsHandler) HandleGetRumors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rumors := h.deps.Rumors(r.Context())
	if rumors == nil {
		rumors = []RumorView{}
	}
	writeJSON(w, http.StatusOK, rumors)
}
