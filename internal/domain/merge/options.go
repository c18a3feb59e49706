// Package merge consolidates duplicate player records.
package merge

import "github.com/verdiblanco/rumormill/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
