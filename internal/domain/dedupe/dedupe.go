// Package dedupe tracks rumor links that earlier sync cycles already
// processed, so repeated feed items never double-count a mention.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen rumor links for at-most-once matching.
type Deduper interface {
	// SeenAndRecord atomically checks whether link was seen and records it
	// if not. Returns true if link was already seen.
	SeenAndRecord(ctx context.Context, link string) bool

	// Unrecord removes a link from the seen set so it can be retried. Used
	// when a rumor was marked seen but failed to be enqueued.
	Unrecord(ctx context.Context, link string)

	// Size returns the number of tracked links.
	Size() int64
}

// InMemoryDeduper implements Deduper with a bounded map plus FIFO eviction
// order. With maxSize <= 0 the set is unbounded.
type InMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, oldest first; unused when unbounded
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) *InMemoryDeduper {
	d := &InMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

// SeenAndRecord atomically checks and records link.
func (d *InMemoryDeduper) SeenAndRecord(ctx context.Context, link string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[link]; ok {
		return true
	}

	if d.maxSize > 0 {
		for len(d.seen) >= d.maxSize && len(d.order) > 0 {
			oldest := d.order[0]
			d.order = d.order[1:]
			delete(d.seen, oldest)
		}
		d.order = append(d.order, link)
	}
	d.seen[link] = struct{}{}
	return false
}

// Unrecord removes link from the seen set.
func (d *InMemoryDeduper) Unrecord(ctx context.Context, link string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[link]; !ok {
		return
	}
	delete(d.seen, link)
	if d.maxSize > 0 {
		for i, l := range d.order {
			if l == link {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Size returns the number of tracked links.
func (d *InMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return int64(len(d.seen))
}
