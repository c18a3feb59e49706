// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// FeedSource configures one rumor feed.
type FeedSource struct {
	// Name tags every item the source contributes.
	Name string `koanf:"name"`

	// URL of the RSS or Atom document.
	URL string `koanf:"url"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Feeds lists the rumor sources polled by the sync cycle.
	Feeds []FeedSource `koanf:"feeds"`

	// FetchTimeoutMS bounds each per-source fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// SyncCron is the cron expression for scheduled sync cycles.
	// Empty disables the scheduler; sync can still be triggered over HTTP.
	SyncCron string `koanf:"sync_cron"`

	// RumorQueueSize bounds the in-memory rumor queue.
	RumorQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of match workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize caps the cross-cycle seen-link cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTrendingLimit caps GET /api/trending?limit.
	MaxTrendingLimit int `koanf:"max_trending_limit"`

	// MaxAliasWords caps the alias phrase length considered by the matcher.
	MaxAliasWords int `koanf:"max_alias_words"`

	// AdminTokens lists bearer tokens granted the admin role.
	AdminTokens []string `koanf:"admin_tokens"`

	// FeatureFlags toggles named features, e.g. rumor_sync.
	FeatureFlags map[string]bool `koanf:"feature_flags"`

	// EnrichDescriptions extracts article text for items without one.
	EnrichDescriptions bool `koanf:"enrich_descriptions"`

	// EnrichTimeoutMS bounds each article extraction.
	EnrichTimeoutMS int `koanf:"enrich_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Feeds:            nil,
		FetchTimeoutMS:   10_000,
		SyncCron:         "@every 15m",
		RumorQueueSize:   10_000,
		WorkerCount:      runtime.NumCPU() * 4,
		DedupeSize:       50_000,
		MaxTrendingLimit: 100,
		MaxAliasWords:    4,
		FeatureFlags: map[string]bool{
			"rumor_sync": true,
		},
		EnrichDescriptions: false,
		EnrichTimeoutMS:    5_000,
	}
}
