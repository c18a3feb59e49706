// Package repository defines the player registry store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the record map for an expected population.
func WithInitialCapacity(capacity int) Option {
	return func(s *MemStore) {
		if capacity > 0 {
			s.records = make(map[string]*record, capacity)
		}
	}
}
