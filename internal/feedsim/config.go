package feedsim

import "time"

// Config holds configuration for a feed simulation run
type Config struct {
	ListenAddr string        // Address the simulated feeds are served on
	TargetURL  string        // Base URL of the rumormill service under test
	AdminToken string        // Admin token for the sync and merge endpoints
	NumItems   int           // Number of rumor items to generate
	NumSources int           // Number of simulated feed sources
	Seed       int64         // Seed for deterministic generation
	TopN       int           // Number of trending entries to fetch
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated items
	LogFile    string        // Log file for run output
	ServeOnly  bool          // Serve feeds without driving the target
	Verbose    bool          // Enable verbose logging
}

// Item is one generated rumor headline.
type Item struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	PublishDate time.Time `json:"publish_date"`
	Source      string    `json:"source"`
	Player      string    `json:"player,omitempty"` // canonical name, empty for noise items
}

// TrendingEntry mirrors the service's trending row wire shape.
type TrendingEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	RumorCount int    `json:"rumor_count"`
}

// SyncReport mirrors the service's sync report wire shape.
type SyncReport struct {
	Fetched    int `json:"fetched"`
	Enqueued   int `json:"enqueued"`
	Duplicates int `json:"duplicates"`
	Dropped    int `json:"dropped"`
}

// Stats holds simulation statistics
type Stats struct {
	ItemsGenerated  int
	NoiseItems      int
	PlayersCreated  int
	ItemsFetched    int
	ItemsEnqueued   int
	TrendingEntries int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
