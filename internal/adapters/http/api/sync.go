package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/verdiblanco/rumormill/internal/app"
	"github.com/verdiblanco/rumormill/internal/auth"
	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/internal/flags"
)

// rumorSyncFlag gates the manual sync endpoint.
const rumorSyncFlag = "rumor_sync"

// SyncDependencies narrows Dependencies to the sync operation.
type SyncDependencies interface {
	RunSyncCycle(ctx context.Context) (model.SyncReport, error)
}

// SyncHandler triggers an on-demand feed sync cycle.
type SyncHandler struct {
	deps         SyncDependencies
	identity     auth.Identity
	featureFlags flags.Provider
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(deps SyncDependencies, identity auth.Identity, featureFlags flags.Provider) *SyncHandler {
	return &SyncHandler{deps: deps, identity: identity, featureFlags: featureFlags}
}

// HandleSync processes POST /api/sync. Admin only, and gated behind the
// rumor_sync feature flag.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	requireAdmin(h.identity, func(w http.ResponseWriter, r *http.Request, _ auth.UserInfo) {
		if h.featureFlags != nil && !h.featureFlags.IsEnabled(rumorSyncFlag) {
			writeError(w, http.StatusServiceUnavailable, "feature_disabled", ErrFeatureDisabled)
			return
		}

		report, err := h.deps.RunSyncCycle(r.Context())
		if err != nil {
			writeSyncError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})(w, r)
}

func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		writeError(w, http.StatusConflict, "sync_in_progress", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_started", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
