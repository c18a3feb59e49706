package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verdiblanco/rumormill/internal/auth"
	"github.com/verdiblanco/rumormill/internal/domain/merge"
	"github.com/verdiblanco/rumormill/internal/domain/model"
)

// MergeDependencies narrows Dependencies to the merge operation.
type MergeDependencies interface {
	Merge(ctx context.Context, primaryID, duplicateID string) (model.MergeResult, error)
}

// MergeHandler absorbs one player record into another.
type MergeHandler struct {
	deps     MergeDependencies
	identity auth.Identity
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(deps MergeDependencies, identity auth.Identity) *MergeHandler {
	return &MergeHandler{deps: deps, identity: identity}
}

type mergeRequest struct {
	PrimaryID   string `json:"primary_id"`
	DuplicateID string `json:"duplicate_id"`
}

// HandleMerge processes POST /api/merge. Admin only.
func (h *MergeHandler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	requireAdmin(h.identity, func(w http.ResponseWriter, r *http.Request, _ auth.UserInfo) {
		var req mergeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if req.PrimaryID == "" || req.DuplicateID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", merge.ErrInvalidMerge)
			return
		}

		result, err := h.deps.Merge(r.Context(), req.PrimaryID, req.DuplicateID)
		if err != nil {
			writeMergeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})(w, r)
}

func writeMergeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, merge.ErrInvalidMerge), errors.Is(err, merge.ErrSelfMerge):
		writeError(w, http.StatusBadRequest, "invalid_merge", err)
	case errors.Is(err, merge.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, merge.ErrPlayerRetired):
		writeError(w, http.StatusConflict, "player_retired", err)
	case errors.Is(err, merge.ErrAliasConflict):
		writeError(w, http.StatusConflict, "alias_conflict", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
