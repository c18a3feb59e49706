package feeds

import (
	"context"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/logger"
)

const (
	defaultEnrichTimeout = 5 * time.Second
	maxExcerptRunes      = 500
)

// enricher fills in missing item descriptions by extracting readable text
// from the linked article. Disabled unless WithReadabilityEnrichment is set;
// extraction failures leave the item untouched.
type enricher struct {
	timeout time.Duration
	logger  logger.Logger
}

func newEnricher(timeout time.Duration) *enricher {
	if timeout <= 0 {
		timeout = defaultEnrichTimeout
	}
	return &enricher{
		timeout: timeout,
		logger:  logger.Get().Named("feeds.enrich"),
	}
}

func (e *enricher) enrich(ctx context.Context, items []model.RumorItem) {
	for i := range items {
		if items[i].Description != "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		article, err := readability.FromURL(items[i].Link, e.timeout)
		if err != nil {
			e.logger.Debug(ctx, "description enrichment failed",
				logger.String("link", items[i].Link),
				logger.Error(err))
			continue
		}

		excerpt := strings.TrimSpace(article.Excerpt)
		if excerpt == "" {
			excerpt = strings.TrimSpace(article.TextContent)
		}
		if runes := []rune(excerpt); len(runes) > maxExcerptRunes {
			excerpt = string(runes[:maxExcerptRunes])
		}
		items[i].Description = excerpt
	}
}
