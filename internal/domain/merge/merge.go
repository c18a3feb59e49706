// Package merge consolidates duplicate player records into a surviving
// primary record while preserving historical mention data.
package merge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

// Registry is the slice of the player store the engine needs.
type Registry interface {
	Get(ctx context.Context, id string) (model.Player, error)

	// TransferAndRetire must apply the association move, the alias-set
	// union, the count recomputation and the retirement atomically.
	TransferAndRetire(ctx context.Context, duplicateID, primaryID string, aliases []string) (int, error)
}

// AliasIndex is the slice of the alias index the engine needs.
type AliasIndex interface {
	Resolve(ctx context.Context, normalized string) (string, bool)
	Reassign(ctx context.Context, fromID, toID string) []string
}

// Engine merges duplicate players.
type Engine struct {
	mu       sync.Mutex // serializes merges so conflict checks stay valid
	registry Registry
	index    AliasIndex
	logger   logger.Logger
}

// NewEngine creates a merge engine.
func NewEngine(registry Registry, index AliasIndex, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		index:    index,
		logger:   logger.Get().Named("merge"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge consolidates duplicateID into primaryID. On success every alias of
// the duplicate resolves to the primary, all mention associations have been
// moved, and the duplicate is retired. Any validation or conflict failure
// leaves both records untouched.
func (e *Engine) Merge(ctx context.Context, primaryID, duplicateID string) (model.MergeResult, error) {
	res := model.MergeResult{PrimaryID: primaryID, DuplicateID: duplicateID}

	if primaryID == "" || duplicateID == "" {
		return res, fmt.Errorf("%w: empty player id", ErrInvalidMerge)
	}
	if primaryID == duplicateID {
		return res, fmt.Errorf("%w: %s", ErrSelfMerge, primaryID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	primary, err := e.registry.Get(ctx, primaryID)
	if err != nil {
		return res, fmt.Errorf("%w: primary %s", ErrPlayerNotFound, primaryID)
	}
	duplicate, err := e.registry.Get(ctx, duplicateID)
	if err != nil {
		return res, fmt.Errorf("%w: duplicate %s", ErrPlayerNotFound, duplicateID)
	}
	if primary.Retired() {
		return res, fmt.Errorf("%w: primary %s", ErrPlayerRetired, primaryID)
	}
	if duplicate.Retired() {
		return res, fmt.Errorf("%w: duplicate %s", ErrPlayerRetired, duplicateID)
	}

	// Every name the duplicate claims must either be unowned or owned by
	// one of the two merge parties; anything else is a conflict and the
	// merge is rejected before any mutation.
	names := append([]string{duplicate.NormalizedName}, duplicate.Aliases...)
	for _, name := range names {
		owner, ok := e.index.Resolve(ctx, name)
		if ok && owner != duplicateID && owner != primaryID {
			metrics.RecordMergeConflict()
			return res, fmt.Errorf("%w: %q is claimed by player %s", ErrAliasConflict, name, owner)
		}
	}

	start := time.Now()
	moved, err := e.registry.TransferAndRetire(ctx, duplicateID, primaryID, names)
	if err != nil {
		return res, fmt.Errorf("transfer associations: %w", err)
	}
	e.index.Reassign(ctx, duplicateID, primaryID)

	res.NewsTransferred = moved
	metrics.RecordMergeCompleted(moved)
	e.logger.Info(ctx, "merged duplicate player",
		logger.String("primary_id", primaryID),
		logger.String("duplicate_id", duplicateID),
		logger.Int("news_transferred", moved),
		logger.Duration("took", time.Since(start)),
	)
	return res, nil
}

// IsValidationError reports whether err is a pre-mutation validation
// failure (as opposed to a conflict or persistence failure).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMerge) ||
		errors.Is(err, ErrSelfMerge) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrPlayerRetired)
}
