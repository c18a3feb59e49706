package service

import (
	"errors"
	"fmt"

	"github.com/verdiblanco/rumormill/internal/domain/alias"
)

// Sentinel error kinds for this package, matchable with errors.Is.
var (
	// ErrNotStarted marks operations invoked before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrSyncInProgress rejects a sync cycle while another is running.
	ErrSyncInProgress = errors.New("sync cycle already in progress")

	// ErrEmptyName rejects player names that normalize to nothing. It
	// wraps alias.ErrInvalidAlias so transport layers can map both with
	// one check.
	ErrEmptyName = fmt.Errorf("player name must not be empty: %w", alias.ErrInvalidAlias)
)
