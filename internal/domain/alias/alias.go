// Package alias maintains the mapping from normalized name variants to
// canonical player identifiers.
//
// Every normalized string resolves to at most one player. Conflicting
// registrations are rejected; callers consolidate duplicates through the
// merge engine instead of overwriting.
package alias

import (
	"context"
	"fmt"
	"sync"
)

// Index resolves normalized names to player ids and tracks alias sets.
type Index interface {
	// Resolve returns the player id a normalized name maps to.
	Resolve(ctx context.Context, normalized string) (string, bool)

	// Register maps normalized to playerID. Registering a name that already
	// maps to a different player returns ErrAliasConflict; re-registering
	// the same mapping is a no-op.
	Register(ctx context.Context, normalized, playerID string) error

	// Unregister removes a single mapping if it points at playerID.
	Unregister(ctx context.Context, normalized, playerID string)

	// Aliases returns every normalized name mapping to playerID.
	Aliases(ctx context.Context, playerID string) []string

	// Reassign atomically repoints every name owned by fromID to toID and
	// returns the names moved. Used by the merge engine after it has
	// verified there are no conflicts.
	Reassign(ctx context.Context, fromID, toID string) []string

	// Size returns the number of tracked normalized names.
	Size() int
}

// InMemoryIndex implements Index with a mutex-guarded map.
type InMemoryIndex struct {
	mu      sync.RWMutex
	byName  map[string]string   // normalized name -> player id
	byOwner map[string][]string // player id -> owned names
}

// NewInMemoryIndex creates an empty alias index.
func NewInMemoryIndex(opts ...Option) *InMemoryIndex {
	idx := &InMemoryIndex{
		byName:  make(map[string]string),
		byOwner: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Resolve returns the player id a normalized name maps to.
func (idx *InMemoryIndex) Resolve(ctx context.Context, normalized string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	id, ok := idx.byName[normalized]
	return id, ok
}

// Register maps normalized to playerID, rejecting conflicting ownership.
func (idx *InMemoryIndex) Register(ctx context.Context, normalized, playerID string) error {
	if normalized == "" {
		return fmt.Errorf("%w: empty normalized name", ErrInvalidAlias)
	}
	if playerID == "" {
		return fmt.Errorf("%w: empty player id", ErrInvalidAlias)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if owner, ok := idx.byName[normalized]; ok {
		if owner == playerID {
			return nil // idempotent
		}
		return fmt.Errorf("%w: %q already maps to player %s", ErrAliasConflict, normalized, owner)
	}

	idx.byName[normalized] = playerID
	idx.byOwner[playerID] = append(idx.byOwner[playerID], normalized)
	return nil
}

// Unregister removes a mapping if it is owned by playerID.
func (idx *InMemoryIndex) Unregister(ctx context.Context, normalized, playerID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if owner, ok := idx.byName[normalized]; !ok || owner != playerID {
		return
	}
	delete(idx.byName, normalized)
	idx.byOwner[playerID] = removeString(idx.byOwner[playerID], normalized)
	if len(idx.byOwner[playerID]) == 0 {
		delete(idx.byOwner, playerID)
	}
}

// Aliases returns a copy of every name owned by playerID.
func (idx *InMemoryIndex) Aliases(ctx context.Context, playerID string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	owned := idx.byOwner[playerID]
	out := make([]string, len(owned))
	copy(out, owned)
	return out
}

// Reassign repoints every name owned by fromID to toID.
func (idx *InMemoryIndex) Reassign(ctx context.Context, fromID, toID string) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	moved := idx.byOwner[fromID]
	if len(moved) == 0 {
		return nil
	}
	for _, name := range moved {
		idx.byName[name] = toID
	}
	idx.byOwner[toID] = append(idx.byOwner[toID], moved...)
	delete(idx.byOwner, fromID)

	out := make([]string, len(moved))
	copy(out, moved)
	return out
}

// Size returns the number of tracked normalized names.
func (idx *InMemoryIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.byName)
}

func removeString(ss []string, s string) []string {
	for i, v := range ss {
		if v == s {
			return append(ss[:i], ss[i+1:]...)
		}
	}
	return ss
}
