// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/verdiblanco/rumormill/internal/auth"
	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/internal/domain/types"
	"github.com/verdiblanco/rumormill/internal/flags"
)

// Read shapes returned by the API, shared with the site renderer.
type (
	TrendingEntry = types.TrendingEntry
	PlayerView    = types.PlayerView
	RumorView     = types.RumorView
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations.
	Trending(ctx context.Context, limit int) ([]TrendingEntry, error)
	Player(ctx context.Context, id string) (PlayerView, error)
	Rumors(ctx context.Context) []RumorView
	Stats(ctx context.Context) map[string]any

	// Registry mutations.
	CreatePlayer(ctx context.Context, name string, aliases []string) (PlayerView, error)
	AddAlias(ctx context.Context, playerID, alias string) (PlayerView, error)

	// Operator actions.
	Merge(ctx context.Context, primaryID, duplicateID string) (model.MergeResult, error)
	RunSyncCycle(ctx context.Context) (model.SyncReport, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rumorsHandler   *RumorsHandler
	trendingHandler *TrendingHandler
	playersHandler  *PlayersHandler
	mergeHandler    *MergeHandler
	syncHandler     *SyncHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, identity auth.Identity, featureFlags flags.Provider, maxTrendingLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		rumorsHandler:   NewRumorsHandler(deps),
		trendingHandler: NewTrendingHandler(deps, maxTrendingLimit),
		playersHandler:  NewPlayersHandler(deps),
		mergeHandler:    NewMergeHandler(deps, identity),
		syncHandler:     NewSyncHandler(deps, identity, featureFlags),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/rumors", MetricsMiddleware(s.rumorsHandler.HandleGetRumors, "rumors"))
	mux.HandleFunc("/api/trending", MetricsMiddleware(s.trendingHandler.HandleGetTrending, "trending"))
	mux.HandleFunc("/api/players", MetricsMiddleware(s.playersHandler.HandleCreatePlayer, "players"))
	mux.HandleFunc("/api/players/", MetricsMiddleware(s.playersHandler.HandlePlayerSubroutes, "players"))
	mux.HandleFunc("/api/merge", MetricsMiddleware(s.mergeHandler.HandleMerge, "merge"))
	mux.HandleFunc("/api/sync", MetricsMiddleware(s.syncHandler.HandleSync, "sync"))
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
