// Package repository defines the player registry store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
)

// Store provides read/write access to player records and their mention
// associations. Implementations must serialize mutations so that a merge
// and a concurrent mention recording cannot interleave into a corrupted
// state.
type Store interface {
	// Create inserts a new player record. Returns ErrDuplicateID if the id
	// is already taken.
	Create(ctx context.Context, p model.Player) error

	// Get returns a player by id, retired or not.
	// Returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (model.Player, error)

	// RecordMention associates a rumor link with a player and updates its
	// counters and first/last-seen window. Returns false when the link was
	// already associated (the rumor never counts twice). Returns ErrRetired
	// for absorbed players.
	RecordMention(ctx context.Context, playerID, link string, publishedAt time.Time) (bool, error)

	// Associations returns the rumor links associated with a player.
	Associations(ctx context.Context, playerID string) ([]string, error)

	// AddAlias appends a normalized alias to the player's record. The
	// caller owns global uniqueness (via the alias index); the store only
	// keeps the per-player set.
	AddAlias(ctx context.Context, playerID, normalized string) error

	// TransferAndRetire atomically moves every association from duplicate
	// to primary, recomputes the primary's rumor count as the size of the
	// association union, widens its first/last-seen window, and marks the
	// duplicate absorbed into the primary. Returns the number of
	// associations the duplicate held.
	TransferAndRetire(ctx context.Context, duplicateID, primaryID string, aliases []string) (int, error)

	// Trending returns live players with at least one mention, ordered by
	// last-seen descending, then rumor count descending, then id.
	Trending(ctx context.Context, limit int) ([]model.Player, error)

	// Count returns the number of live (non-retired) players.
	Count(ctx context.Context) int
}
