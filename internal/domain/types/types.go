// Package types contains the JSON view types shared by the HTTP API and the
// server-rendered site.
package types

import (
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
)

// TrendingEntry is one row of the trending players list.
type TrendingEntry struct {
	Rank       int       `json:"rank"`
	PlayerID   string    `json:"player_id"`
	Name       string    `json:"name"`
	RumorCount int       `json:"rumor_count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// PlayerView is the full public representation of a player record.
type PlayerView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	Aliases        []string  `json:"aliases"`
	RumorCount     int       `json:"rumor_count"`
	FirstSeenAt    time.Time `json:"first_seen_at,omitzero"`
	LastSeenAt     time.Time `json:"last_seen_at,omitzero"`
	AbsorbedInto   string    `json:"absorbed_into,omitempty"`
}

// RumorView is the public representation of an ingested rumor item.
type RumorView struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishDate time.Time `json:"publish_date"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
}

// NewTrendingEntry builds a ranked row from a player record. Rank is
// one-based and assigned by the caller from the sorted position.
func NewTrendingEntry(rank int, p model.Player) TrendingEntry {
	return TrendingEntry{
		Rank:       rank,
		PlayerID:   p.ID,
		Name:       p.Name,
		RumorCount: p.RumorCount,
		LastSeenAt: p.LastSeenAt,
	}
}

// NewPlayerView builds the public view of a player record.
func NewPlayerView(p model.Player) PlayerView {
	aliases := p.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return PlayerView{
		ID:             p.ID,
		Name:           p.Name,
		NormalizedName: p.NormalizedName,
		Aliases:        aliases,
		RumorCount:     p.RumorCount,
		FirstSeenAt:    p.FirstSeenAt,
		LastSeenAt:     p.LastSeenAt,
		AbsorbedInto:   p.AbsorbedInto,
	}
}

// NewRumorView builds the public view of a rumor item.
func NewRumorView(r model.RumorItem) RumorView {
	return RumorView{
		Title:       r.Title,
		Link:        r.Link,
		PublishDate: r.PublishDate,
		Source:      r.Source,
		Description: r.Description,
	}
}
