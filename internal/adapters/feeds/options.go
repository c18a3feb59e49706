package feeds

import (
	"net/http"
	"time"

	"github.com/verdiblanco/rumormill/pkg/logger"
)

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-source fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithReadabilityEnrichment fills in missing descriptions by extracting
// readable text from the linked article. One extraction per item, bounded
// by timeout.
func WithReadabilityEnrichment(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.enricher = newEnricher(timeout)
	}
}

// WithLogger sets the fetcher logger.
func WithLogger(l logger.Logger) Option {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}
