package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	worker "github.com/verdiblanco/rumormill/internal/adapters/mq/worker"
	model "github.com/verdiblanco/rumormill/internal/domain/model"
	logging "github.com/verdiblanco/rumormill/pkg/logger"
)

// Mock implementations for testing.
type mockQueue struct {
	rumorChan  chan worker.Rumor
	closeError error
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		rumorChan: make(chan worker.Rumor, 100),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan worker.Rumor {
	return mq.rumorChan
}

func (mq *mockQueue) Close() error {
	close(mq.rumorChan)
	return mq.closeError
}

func (mq *mockQueue) addRumor(r worker.Rumor) {
	mq.rumorChan <- r
}

type mockMatcher struct {
	mu      sync.RWMutex
	matched map[string]int // link -> times seen
	errors  map[string]error
}

func newMockMatcher() *mockMatcher {
	return &mockMatcher{
		matched: make(map[string]int),
		errors:  make(map[string]error),
	}
}

func (mm *mockMatcher) MatchAndRecord(ctx context.Context, rumors []model.RumorItem) (model.MatchSummary, error) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	var summary model.MatchSummary
	for _, r := range rumors {
		if err, exists := mm.errors[r.Link]; exists {
			return summary, err
		}
		mm.matched[r.Link]++
		summary.RumorsScanned++
		summary.MentionsRecorded++
	}
	return summary, nil
}

func (mm *mockMatcher) setError(link string, err error) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.errors[link] = err
}

func (mm *mockMatcher) seen(link string) (int, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	n, exists := mm.matched[link]
	return n, exists
}

func rumor(link string) worker.Rumor {
	return model.RumorItem{
		Title:       "rumor at " + link,
		Link:        link,
		Source:      "test-source",
		PublishDate: time.Now(),
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		_ = logging.Init()

		queue := newMockQueue()
		matcher := newMockMatcher()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(queue, matcher)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(
				queue, matcher,
				worker.WithName("test-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(queue, matcher)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when processing rumors", func() {
				queue.addRumor(rumor("https://rumors.example/isco"))
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the matcher should receive them", func() {
					n, seen := matcher.seen("https://rumors.example/isco")
					convey.So(seen, convey.ShouldBeTrue)
					convey.So(n, convey.ShouldEqual, 1)
				})
			})

			convey.Convey("And when matching fails", func() {
				matcher.setError("https://rumors.example/bad", errors.New("match error"))
				queue.addRumor(rumor("https://rumors.example/bad"))
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the rumor leaves no recorded mention", func() {
					_, seen := matcher.seen("https://rumors.example/bad")
					convey.So(seen, convey.ShouldBeFalse)
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				err := w.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When context is cancelled", func() {
			w := worker.NewInMemoryWorker(queue, matcher)
			ctx, cancel := context.WithCancel(context.Background())

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			cancel()
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then the worker should have stopped", func() {
				queue.addRumor(rumor("https://rumors.example/after-cancel"))
				time.Sleep(50 * time.Millisecond)

				_, seen := matcher.seen("https://rumors.example/after-cancel")
				convey.So(seen, convey.ShouldBeFalse)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a new worker pool", t, func() {
		_ = logging.Init()

		queue := newMockQueue()
		matcher := newMockMatcher()

		convey.Convey("When creating a pool with default count", func() {
			pool := worker.NewPool(0, queue, matcher)

			convey.Convey("Then it sizes itself from the CPU count", func() {
				convey.So(pool, convey.ShouldNotBeNil)
				convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When creating a pool with a custom count", func() {
			pool := worker.NewPool(3, queue, matcher)

			convey.Convey("Then it has exactly that many workers", func() {
				convey.So(pool.Size(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When starting a pool", func() {
			pool := worker.NewPool(2, queue, matcher)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(20 * time.Millisecond)

			convey.Convey("And when processing multiple rumors", func() {
				links := []string{
					"https://rumors.example/1",
					"https://rumors.example/2",
					"https://rumors.example/3",
				}
				for _, link := range links {
					queue.addRumor(rumor(link))
				}
				time.Sleep(100 * time.Millisecond)

				convey.Convey("Then every rumor reaches the matcher exactly once", func() {
					for _, link := range links {
						n, seen := matcher.seen(link)
						convey.So(seen, convey.ShouldBeTrue)
						convey.So(n, convey.ShouldEqual, 1)
					}
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer shutdownCancel()

				err := pool.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When stopping a pool", func() {
			pool := worker.NewPool(2, queue, matcher)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(20 * time.Millisecond)

			pool.Stop()
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then workers no longer consume the queue", func() {
				queue.addRumor(rumor("https://rumors.example/after-stop"))
				time.Sleep(50 * time.Millisecond)

				_, seen := matcher.seen("https://rumors.example/after-stop")
				convey.So(seen, convey.ShouldBeFalse)
			})
		})
	})
}

func TestWorkerConcurrency(t *testing.T) {
	convey.Convey("Given a pool with multiple workers", t, func() {
		_ = logging.Init()

		queue := newMockQueue()
		matcher := newMockMatcher()

		pool := worker.NewPool(4, queue, matcher)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pool.Start(ctx)
		time.Sleep(20 * time.Millisecond)

		convey.Convey("When many producers enqueue concurrently", func() {
			const total = 100
			var wg sync.WaitGroup

			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func(producer int) {
					defer wg.Done()
					for j := 0; j < total/5; j++ {
						queue.addRumor(rumor(fmt.Sprintf("https://rumors.example/%d/%d", producer, j)))
					}
				}(i)
			}
			wg.Wait()

			time.Sleep(200 * time.Millisecond)

			convey.Convey("Then every rumor is matched exactly once", func() {
				processed := 0
				for i := 0; i < 5; i++ {
					for j := 0; j < total/5; j++ {
						n, seen := matcher.seen(fmt.Sprintf("https://rumors.example/%d/%d", i, j))
						if seen && n == 1 {
							processed++
						}
					}
				}
				convey.So(processed, convey.ShouldEqual, total)
			})
		})
	})
}

func TestWorkerQueueClosure(t *testing.T) {
	convey.Convey("Given a running worker", t, func() {
		_ = logging.Init()

		queue := newMockQueue()
		matcher := newMockMatcher()

		w := worker.NewInMemoryWorker(queue, matcher)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go w.Run(ctx)
		time.Sleep(10 * time.Millisecond)

		convey.Convey("When the queue channel is closed", func() {
			queue.addRumor(rumor("https://rumors.example/last"))
			_ = queue.Close()
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then the buffered rumor was still processed", func() {
				_, seen := matcher.seen("https://rumors.example/last")
				convey.So(seen, convey.ShouldBeTrue)
			})

			convey.Convey("And shutdown returns promptly", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()
				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})
	})
}
