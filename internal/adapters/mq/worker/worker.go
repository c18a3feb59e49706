// Package worker runs the pool of goroutines that drain the rumor queue and
// feed each rumor through the player matcher.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Rumor abstracts what workers read off the queue.
type Rumor = model.RumorItem

// Matcher scans rumor text for player mentions and records them.
type Matcher interface {
	MatchAndRecord(ctx context.Context, rumors []model.RumorItem) (model.MatchSummary, error)
}

// Queue defines how workers receive rumors.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Rumor
}

// Worker processes rumors from the queue until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker over an in-process queue.
type InMemoryWorker struct {
	queue   Queue
	matcher Matcher
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, matcher Matcher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		matcher:  matcher,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	rumorChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case r, ok := <-rumorChan:
			if !ok {
				return
			}
			if err := w.processRumor(ctx, r); err != nil {
				w.logger.Error(ctx, "error processing rumor", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processRumor feeds a single rumor through the matcher.
func (w *InMemoryWorker) processRumor(ctx context.Context, r Rumor) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	summary, err := w.matcher.MatchAndRecord(ctx, []model.RumorItem{r})
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "matching failed for rumor",
			logger.String("link", r.Link),
			logger.Error(err),
		)
		return fmt.Errorf("match failed for %s: %w", r.Link, err)
	}

	if summary.MentionsRecorded > 0 {
		w.logger.Debug(ctx, "mentions recorded",
			logger.String("link", r.Link),
			logger.Int("mentions", summary.MentionsRecorded),
		)
	}

	return nil
}

// Pool manages multiple workers draining the same queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a worker pool. A non-positive count defaults to a
// multiple of the CPU count.
func NewPool(workerCount int, queue Queue, matcher Matcher) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			matcher,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop stops all workers without draining the queue.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		close(worker.shutdown)
	}
	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
