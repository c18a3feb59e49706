// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/verdiblanco/rumormill/internal/adapters/repository"
	"github.com/verdiblanco/rumormill/internal/domain/alias"
)

// PlayersDependencies defines the interface for player registry operations.
type PlayersDependencies interface {
	Player(ctx context.Context, id string) (PlayerView, error)
	CreatePlayer(ctx context.Context, name string, aliases []string) (PlayerView, error)
	AddAlias(ctx context.Context, playerID, alias string) (PlayerView, error)
}

// PlayersHandler handles player registry requests.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// createPlayerRequest mirrors the OpenAPI schema for POST /api/players.
type createPlayerRequest struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// addAliasRequest mirrors the OpenAPI schema for POST /api/players/{id}/aliases.
type addAliasRequest struct {
	Alias string `json:"alias"`
}

// HandleCreatePlayer handles POST /api/players requests.
func (h *PlayersHandler) HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "missing_name", ErrBadRequest)
		return
	}

	view, err := h.deps.CreatePlayer(r.Context(), req.Name, req.Aliases)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandlePlayerSubroutes dispatches GET /api/players/{id} and
// POST /api/players/{id}/aliases.
func (h *PlayersHandler) HandlePlayerSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/players/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	id, sub, hasSub := strings.Cut(rest, "/")
	switch {
	case !hasSub && r.Method == http.MethodGet:
		h.handleGetPlayer(w, r, id)
	case hasSub && sub == "aliases" && r.Method == http.MethodPost:
		h.handleAddAlias(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handleGetPlayer(w http.ResponseWriter, r *http.Request, id string) {
	view, err := h.deps.Player(r.Context(), id)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *PlayersHandler) handleAddAlias(w http.ResponseWriter, r *http.Request, id string) {
	var req addAliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Alias) == "" {
		writeError(w, http.StatusBadRequest, "missing_alias", ErrBadRequest)
		return
	}

	view, err := h.deps.AddAlias(r.Context(), id, req.Alias)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writePlayerError translates registry errors to HTTP statuses.
func writePlayerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrRetired):
		writeError(w, http.StatusConflict, "player_retired", err)
	case errors.Is(err, alias.ErrAliasConflict):
		writeError(w, http.StatusConflict, "alias_conflict", err)
	case errors.Is(err, alias.ErrInvalidAlias):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
