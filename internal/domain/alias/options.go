// Package alias maintains the mapping from normalized name variants to
// canonical player identifiers.
package alias

// Option applies a configuration option to the InMemoryIndex.
type Option func(*InMemoryIndex)

// WithInitialCapacity pre-sizes the index maps for an expected population.
func WithInitialCapacity(capacity int) Option {
	return func(idx *InMemoryIndex) {
		if capacity > 0 {
			idx.byName = make(map[string]string, capacity)
			idx.byOwner = make(map[string][]string, capacity)
		}
	}
}
