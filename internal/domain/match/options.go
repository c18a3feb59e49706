// Package match scans rumor text for registered player aliases.
package match

import "github.com/verdiblanco/rumormill/pkg/logger"

// Option applies a configuration option to the TextMatcher.
type Option func(*TextMatcher)

// WithMaxAliasWords bounds the n-gram window scanned against the alias index.
func WithMaxAliasWords(n int) Option {
	return func(m *TextMatcher) {
		if n > 0 {
			m.maxAliasWords = n
		}
	}
}

// WithLogger sets a custom logger for the matcher.
func WithLogger(l logger.Logger) Option {
	return func(m *TextMatcher) {
		if l != nil {
			m.logger = l
		}
	}
}
