// Package queue buffers ingested rumor items between the sync cycle and the
// match worker pool.
//
// The in-memory implementation is a bounded channel; a full queue rejects
// enqueues rather than blocking the ingest path.
package queue

import (
	"context"
	"sync"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

const (
	defaultCapacity = 10000
)

// Rumor is the payload type flowing through the queue.
type Rumor = model.RumorItem

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a rumor to the queue.
	// Returns false if the queue is full or closed and the rumor was dropped.
	Enqueue(ctx context.Context, r Rumor) bool

	// Dequeue returns a channel that receives rumors as they become
	// available. The channel is closed when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Rumor

	// Len returns the current number of queued rumors.
	Len(ctx context.Context) int

	// Close shuts down the queue. After closing, no new rumors can be
	// enqueued and the dequeue channel closes once drained.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	rumors   chan Rumor
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.rumors = make(chan Rumor, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a rumor to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Rumor) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.rumors <- r:
		metrics.RecordQueueEnqueue()
		q.updateGauges()
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns a channel that receives rumors as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Rumor {
	out := make(chan Rumor)
	go func() {
		defer close(out)
		for r := range q.rumors {
			select {
			case out <- r:
				metrics.RecordQueueDequeue()
				q.updateGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued rumors.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.rumors)
	q.updateGauges()
	return size
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.rumors)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) updateGauges() {
	size := len(q.rumors)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
