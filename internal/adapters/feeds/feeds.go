// Package feeds retrieves transfer-rumor items from configured RSS and Atom
// sources. Sources are fetched concurrently and a failing source never
// prevents the others from contributing items.
package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxBodyBytes        = 8 << 20 // cap feed payloads at 8 MiB
)

// Source is a single configured rumor feed.
type Source struct {
	Name string
	URL  string
}

// Fetcher retrieves rumor items from one or all configured sources.
type Fetcher interface {
	// FetchAll retrieves every configured source concurrently and returns
	// the combined, link-deduplicated item list sorted newest first.
	FetchAll(ctx context.Context) []model.RumorItem

	// Fetch retrieves and parses a single source.
	Fetch(ctx context.Context, src Source) ([]model.RumorItem, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client   *http.Client
	sources  []Source
	timeout  time.Duration
	enricher *enricher
	logger   logger.Logger
}

// NewHTTPFetcher creates a fetcher for the given sources.
func NewHTTPFetcher(sources []Source, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:  &http.Client{},
		sources: sources,
		timeout: defaultFetchTimeout,
		logger:  logger.Get().Named("feeds"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll fans out one goroutine per source and fans the results back in.
// Failed sources are logged and counted but contribute zero items. The
// combined list is deduplicated by link (the copy from the earliest
// configured source wins) and sorted by publish date descending, ties
// broken by source name ascending.
func (f *HTTPFetcher) FetchAll(ctx context.Context) []model.RumorItem {
	perSource := make([][]model.RumorItem, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			items, err := f.Fetch(ctx, src)
			if err != nil {
				f.logger.Warn(ctx, "source fetch failed",
					logger.String("source", src.Name),
					logger.Error(err))
				metrics.RecordFeedFetch(src.Name, "error")
				return
			}
			metrics.RecordFeedFetch(src.Name, "ok")
			perSource[i] = items
		}(i, src)
	}
	wg.Wait()

	// Deduplicate in configuration order so the winner for a shared link
	// is deterministic regardless of goroutine scheduling.
	seen := make(map[string]struct{})
	var combined []model.RumorItem
	for _, items := range perSource {
		for _, item := range items {
			if _, dup := seen[item.Link]; dup {
				continue
			}
			seen[item.Link] = struct{}{}
			combined = append(combined, item)
		}
	}

	sort.SliceStable(combined, func(a, b int) bool {
		if !combined[a].PublishDate.Equal(combined[b].PublishDate) {
			return combined[a].PublishDate.After(combined[b].PublishDate)
		}
		return combined[a].Source < combined[b].Source
	})

	return combined
}

// Fetch retrieves a single source with its own timeout and parses the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) ([]model.RumorItem, error) {
	if src.URL == "" {
		return nil, fmt.Errorf("%w: source %q has no url", ErrInvalidSource, src.Name)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, src.Name, err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, src.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, src.Name, err)
	}

	metrics.RecordFeedFetchLatency(src.Name, float64(time.Since(start).Milliseconds()))

	items, err := parseFeed(body, src.Name)
	if err != nil {
		return nil, err
	}

	if f.enricher != nil {
		f.enricher.enrich(fetchCtx, items)
	}

	f.logger.Debug(ctx, "source fetched",
		logger.String("source", src.Name),
		logger.Int("items", len(items)))

	return items, nil
}

// Sources returns the configured source list.
func (f *HTTPFetcher) Sources() []Source {
	out := make([]Source, len(f.sources))
	copy(out, f.sources)
	return out
}
