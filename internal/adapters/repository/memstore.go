package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

// record is the internal representation of a player plus its association set.
type record struct {
	player model.Player
	assocs map[string]struct{} // rumor links, distinct by construction
}

// MemStore implements Store with a single mutex guarding all records. The
// mutex is what makes TransferAndRetire atomic with respect to concurrent
// RecordMention calls.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*record
	live    int
}

// NewMemStore creates an empty in-memory player store.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		records: make(map[string]*record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a new player record.
func (s *MemStore) Create(ctx context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	// Copy the alias slice so callers cannot mutate stored state.
	aliases := make([]string, len(p.Aliases))
	copy(aliases, p.Aliases)
	p.Aliases = aliases

	s.records[p.ID] = &record{player: p, assocs: make(map[string]struct{})}
	s.live++
	metrics.UpdateTotalPlayers(s.live)
	return nil
}

// Get returns a player by id.
func (s *MemStore) Get(ctx context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return copyPlayer(rec.player), nil
}

// RecordMention associates link with the player and updates counters.
func (s *MemStore) RecordMention(ctx context.Context, playerID, link string, publishedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[playerID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	if rec.player.Retired() {
		return false, fmt.Errorf("%w: %s", ErrRetired, playerID)
	}
	if _, dup := rec.assocs[link]; dup {
		return false, nil
	}

	rec.assocs[link] = struct{}{}
	rec.player.RumorCount = len(rec.assocs)
	if rec.player.FirstSeenAt.IsZero() || publishedAt.Before(rec.player.FirstSeenAt) {
		rec.player.FirstSeenAt = publishedAt
	}
	if publishedAt.After(rec.player.LastSeenAt) {
		rec.player.LastSeenAt = publishedAt
	}
	return true, nil
}

// Associations returns the rumor links associated with a player.
func (s *MemStore) Associations(ctx context.Context, playerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	links := make([]string, 0, len(rec.assocs))
	for link := range rec.assocs {
		links = append(links, link)
	}
	sort.Strings(links)
	return links, nil
}

// AddAlias appends a normalized alias to the player's stored set.
func (s *MemStore) AddAlias(ctx context.Context, playerID, normalized string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, playerID)
	}
	if rec.player.Retired() {
		return fmt.Errorf("%w: %s", ErrRetired, playerID)
	}
	for _, a := range rec.player.Aliases {
		if a == normalized {
			return nil
		}
	}
	rec.player.Aliases = append(rec.player.Aliases, normalized)
	return nil
}

// TransferAndRetire moves all associations from duplicate to primary and
// retires the duplicate, all under one lock acquisition.
func (s *MemStore) TransferAndRetire(ctx context.Context, duplicateID, primaryID string, aliases []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup, ok := s.records[duplicateID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, duplicateID)
	}
	prim, ok := s.records[primaryID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, primaryID)
	}
	if dup.player.Retired() {
		return 0, fmt.Errorf("%w: %s", ErrRetired, duplicateID)
	}
	if prim.player.Retired() {
		return 0, fmt.Errorf("%w: %s", ErrRetired, primaryID)
	}

	moved := len(dup.assocs)
	for link := range dup.assocs {
		prim.assocs[link] = struct{}{}
	}
	dup.assocs = make(map[string]struct{})

	// Count each distinct association once, never a naive sum.
	prim.player.RumorCount = len(prim.assocs)

	if !dup.player.FirstSeenAt.IsZero() &&
		(prim.player.FirstSeenAt.IsZero() || dup.player.FirstSeenAt.Before(prim.player.FirstSeenAt)) {
		prim.player.FirstSeenAt = dup.player.FirstSeenAt
	}
	if dup.player.LastSeenAt.After(prim.player.LastSeenAt) {
		prim.player.LastSeenAt = dup.player.LastSeenAt
	}

	for _, a := range aliases {
		exists := false
		for _, have := range prim.player.Aliases {
			if have == a {
				exists = true
				break
			}
		}
		if !exists && a != prim.player.NormalizedName {
			prim.player.Aliases = append(prim.player.Aliases, a)
		}
	}

	dup.player.AbsorbedInto = primaryID
	s.live--
	metrics.UpdateTotalPlayers(s.live)
	return moved, nil
}

// Trending returns live mentioned players ordered by recency then count.
func (s *MemStore) Trending(ctx context.Context, limit int) ([]model.Player, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	s.mu.RLock()
	players := make([]model.Player, 0, len(s.records))
	for _, rec := range s.records {
		if rec.player.Retired() || rec.player.RumorCount < 1 {
			continue
		}
		players = append(players, copyPlayer(rec.player))
	}
	s.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool {
		if !players[i].LastSeenAt.Equal(players[j].LastSeenAt) {
			return players[i].LastSeenAt.After(players[j].LastSeenAt)
		}
		if players[i].RumorCount != players[j].RumorCount {
			return players[i].RumorCount > players[j].RumorCount
		}
		return players[i].ID < players[j].ID
	})

	if len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

// Count returns the number of live players.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.live
}

func copyPlayer(p model.Player) model.Player {
	aliases := make([]string, len(p.Aliases))
	copy(aliases, p.Aliases)
	p.Aliases = aliases
	return p
}
