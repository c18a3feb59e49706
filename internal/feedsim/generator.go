package feedsim

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/verdiblanco/rumormill/pkg/logger"
)

// noiseEvery inserts a playerless headline once per this many items.
const noiseEvery = 5

// publishStep is the gap between consecutive item publish dates. Items are
// generated newest-last so feeds read naturally.
const publishStep = 7 * time.Minute

// GenerateItems produces a deterministic set of rumor items from the fixed
// roster. The same seed always yields the same items, links included, so a
// second sync against the same simulator sees only duplicates.
func GenerateItems(ctx context.Context, config *Config) ([]Item, error) {
	if config.NumItems < 1 {
		return nil, fmt.Errorf("item count must be positive, got %d", config.NumItems)
	}
	if config.NumSources < 1 {
		return nil, fmt.Errorf("source count must be positive, got %d", config.NumSources)
	}

	logger.Get().Info(ctx, "generating rumor items",
		logger.Int("numItems", config.NumItems),
		logger.Int("numSources", config.NumSources),
		logger.Any("seed", config.Seed))

	rng := rand.New(rand.NewSource(config.Seed))
	weighted := weightedRoster()

	// Anchor publish dates so runs are reproducible end to end.
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	items := make([]Item, 0, config.NumItems)
	for i := 0; i < config.NumItems; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generation cancelled: %w", ctx.Err())
		default:
		}

		source := SourceName(i % config.NumSources)
		item := Item{
			Link:        "https://feedsim.invalid/" + source + "/story-" + strconv.Itoa(i),
			PublishDate: base.Add(time.Duration(i) * publishStep),
			Source:      source,
		}

		if i%noiseEvery == noiseEvery-1 {
			item.Title = noiseTemplates[rng.Intn(len(noiseTemplates))]
			item.Description = "Around the club: " + item.Title
		} else {
			player := weighted[rng.Intn(len(weighted))]
			mention := player.Name
			// Roughly a third of mentions use an alias instead of the
			// canonical name, exercising the alias index.
			if len(player.Aliases) > 0 && rng.Intn(3) == 0 {
				mention = player.Aliases[rng.Intn(len(player.Aliases))]
			}
			item.Title = fmt.Sprintf(headlineTemplates[rng.Intn(len(headlineTemplates))], mention)
			item.Description = "Rumor mill: " + item.Title
			item.Player = player.Name
		}

		items = append(items, item)
	}

	logger.Get().Info(ctx, "generated rumor items", logger.Int("count", len(items)))
	return items, nil
}

// ExpectedMentions tallies how many generated items mention each canonical
// player, which is the count the trending board should converge on.
func ExpectedMentions(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		if item.Player != "" {
			counts[item.Player]++
		}
	}
	return counts
}

// SourceName returns the label for the i-th simulated source.
func SourceName(i int) string {
	name := sourceNames[i%len(sourceNames)]
	if i >= len(sourceNames) {
		name += "-" + strconv.Itoa(i/len(sourceNames)+1)
	}
	return name
}

// weightedRoster expands the roster so each player appears Weight times,
// making rng.Intn draws follow the configured distribution.
func weightedRoster() []RosterPlayer {
	var out []RosterPlayer
	for _, p := range roster {
		for i := 0; i < p.Weight; i++ {
			out = append(out, p)
		}
	}
	return out
}

// Roster exposes the fixed player pool so the runner can register players
// before driving a sync.
func Roster() []RosterPlayer {
	out := make([]RosterPlayer, len(roster))
	copy(out, roster)
	return out
}
