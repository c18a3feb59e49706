// Package model contains domain models passed between layers.
package model

import "time"

// RumorItem is a single transfer-rumor entry parsed from an external feed.
// Items are ephemeral: they live for one ingestion cycle and only derived
// counters survive on Player records.
type RumorItem struct {
	Title       string    // headline as published by the feed
	Link        string    // canonical URL, unique per rumor
	PublishDate time.Time // absolute publication timestamp
	Source      string    // label of the feed that produced the item
	Description string    // optional summary text
}

// MatchSummary reports what a matching pass did.
type MatchSummary struct {
	RumorsScanned    int
	MentionsRecorded int
	PlayersTouched   int
}

// MergeResult reports the outcome of a successful player merge.
type MergeResult struct {
	PrimaryID       string `json:"primary_id"`
	DuplicateID     string `json:"duplicate_id"`
	NewsTransferred int    `json:"news_transferred"` // mention associations moved from duplicate to primary
}

// SyncReport summarizes one feed sync cycle.
type SyncReport struct {
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Fetched    int       `json:"fetched"`
	Enqueued   int       `json:"enqueued"`
	Duplicates int       `json:"duplicates"`
	Dropped    int       `json:"dropped"`
}
