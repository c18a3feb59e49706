// Package match scans rumor text for registered player aliases and records
// the resulting mentions.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/internal/domain/normalize"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

// defaultMaxAliasWords bounds the n-gram window scanned against the alias
// index. Player aliases longer than this are never matched.
const defaultMaxAliasWords = 4

// Resolver answers whether a normalized string is a registered alias.
type Resolver interface {
	Resolve(ctx context.Context, normalized string) (string, bool)
}

// Recorder persists a detected mention. Returns false when the rumor link
// was already associated with the player.
type Recorder interface {
	RecordMention(ctx context.Context, playerID, link string, publishedAt time.Time) (bool, error)
}

// Matcher attributes rumor mentions to canonical players.
type Matcher interface {
	// MatchAndRecord scans each rumor and records one mention per distinct
	// player per rumor. Unmatched text is ignored. Persistence failures are
	// collected and returned after the whole batch has been scanned.
	MatchAndRecord(ctx context.Context, rumors []model.RumorItem) (model.MatchSummary, error)
}

// TextMatcher implements Matcher with whole-word n-gram scanning.
type TextMatcher struct {
	resolver Resolver
	recorder Recorder

	maxAliasWords int
	logger        logger.Logger
}

// NewTextMatcher creates a matcher with configuration options.
func NewTextMatcher(resolver Resolver, recorder Recorder, opts ...Option) *TextMatcher {
	m := &TextMatcher{
		resolver:      resolver,
		recorder:      recorder,
		maxAliasWords: defaultMaxAliasWords,
		logger:        logger.Get().Named("match"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchAndRecord scans rumors and records mentions.
func (m *TextMatcher) MatchAndRecord(ctx context.Context, rumors []model.RumorItem) (model.MatchSummary, error) {
	summary := model.MatchSummary{}
	touched := make(map[string]struct{})
	var errs []error

	for i := range rumors {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("match aborted: %w", err)
		}

		rumor := &rumors[i]
		start := time.Now()
		players := m.scan(ctx, rumor.Title+" "+rumor.Description)
		metrics.RecordMatchLatency(float64(time.Since(start).Milliseconds()))
		summary.RumorsScanned++

		for playerID, key := range players {
			counted, err := m.recorder.RecordMention(ctx, playerID, rumor.Link, rumor.PublishDate)
			if err != nil {
				// A merge may have retired the player between the scan and
				// the write. Re-resolve the alias once and retry against
				// its current owner.
				if newID, ok := m.resolver.Resolve(ctx, key); ok && newID != playerID {
					playerID = newID
					counted, err = m.recorder.RecordMention(ctx, playerID, rumor.Link, rumor.PublishDate)
				}
			}
			if err != nil {
				metrics.RecordMatchError()
				m.logger.Warn(ctx, "failed to record mention",
					logger.String("player_id", playerID),
					logger.String("link", rumor.Link),
					logger.Error(err),
				)
				errs = append(errs, fmt.Errorf("record mention for %s: %w", playerID, err))
				continue
			}
			if counted {
				metrics.RecordMentionRecorded()
				summary.MentionsRecorded++
				touched[playerID] = struct{}{}
			}
		}
	}

	summary.PlayersTouched = len(touched)
	return summary, errors.Join(errs...)
}

// scan returns the players mentioned in text, keyed by player id with the
// alias key that matched. Matching is whole-word over normalized tokens,
// preferring the longest alias at each position so "isco alarcon" wins over
// "isco", and "francisco" never yields "isco".
func (m *TextMatcher) scan(ctx context.Context, text string) map[string]string {
	tokens := normalize.Tokens(text)
	found := make(map[string]string)

	for i := 0; i < len(tokens); {
		matchedLen := 0
		for n := min(m.maxAliasWords, len(tokens)-i); n >= 1; n-- {
			key := strings.Join(tokens[i:i+n], " ")
			if id, ok := m.resolver.Resolve(ctx, key); ok {
				if _, seen := found[id]; !seen {
					found[id] = key
				}
				matchedLen = n
				break
			}
		}
		if matchedLen > 0 {
			i += matchedLen
		} else {
			i++
		}
	}
	return found
}
