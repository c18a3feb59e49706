package model

import "time"

// Player is a canonical player record in the registry.
//
// NormalizedName and every entry of Aliases share one global key space: no
// two players may claim the same normalized string. Records are never
// physically deleted; a merge marks the duplicate as absorbed.
type Player struct {
	ID             string    // stable identifier (uuid)
	Name           string    // display name as first seen
	NormalizedName string    // canonical lookup key
	Aliases        []string  // alternate normalized spellings, excluding NormalizedName
	RumorCount     int       // distinct rumors mentioning this player
	FirstSeenAt    time.Time // earliest mention publish date
	LastSeenAt     time.Time // latest mention publish date
	AbsorbedInto   string    // id of the surviving record after a merge, empty while live
}

// Retired reports whether the player has been absorbed by a merge.
func (p Player) Retired() bool {
	return p.AbsorbedInto != ""
}
