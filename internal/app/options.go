package service

import (
	"time"

	"github.com/verdiblanco/rumormill/internal/adapters/feeds"
	"github.com/verdiblanco/rumormill/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the rumor feeds polled by the sync cycle.
func WithSources(sources []feeds.Source) Option {
	return func(s *Service) {
		s.sources = sources
	}
}

// WithFetchTimeout bounds each per-source feed fetch.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithWorkerCount sets the number of match workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the in-memory rumor queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize caps the cross-cycle seen-link cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxAliasWords caps the alias phrase length considered by the matcher.
func WithMaxAliasWords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAliasWords = n
		}
	}
}

// WithSyncSchedule enables scheduled sync cycles with a cron expression.
// An empty spec disables the scheduler.
func WithSyncSchedule(spec string) Option {
	return func(s *Service) {
		s.syncSpec = spec
	}
}

// WithDescriptionEnrichment extracts article text for feed items that carry
// no description.
func WithDescriptionEnrichment(timeout time.Duration) Option {
	return func(s *Service) {
		s.enrich = true
		s.enrichTimeout = timeout
	}
}

// WithFetcher injects a fetcher, replacing the HTTP one built from sources.
// Used by tests.
func WithFetcher(f feeds.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
