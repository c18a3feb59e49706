// Package dedupe tracks rumor links that earlier sync cycles already
// processed.
package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*InMemoryDeduper)

// WithMaxSize bounds the number of tracked links. Oldest links are evicted
// first once the bound is reached; maxSize <= 0 disables eviction.
func WithMaxSize(maxSize int) Option {
	return func(d *InMemoryDeduper) {
		d.maxSize = maxSize
	}
}
