package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

// SyncReport is the summary returned by RunSyncCycle.
type SyncReport = model.SyncReport

// RunSyncCycle fetches every configured source, filters rumors already seen
// in earlier cycles, and enqueues the rest for the match workers. Only one
// cycle runs at a time; a second caller gets ErrSyncInProgress instead of
// queueing behind the first.
func (s *Service) RunSyncCycle(ctx context.Context) (SyncReport, error) {
	if err := s.ensureStarted(); err != nil {
		return SyncReport{}, err
	}

	if !s.syncMu.TryLock() {
		return SyncReport{}, ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	report := SyncReport{StartedAt: time.Now()}

	items := s.fetcher.FetchAll(ctx)
	report.Fetched = len(items)

	fresh := make([]model.RumorItem, 0, len(items))
	for _, item := range items {
		if s.deduper.SeenAndRecord(ctx, item.Link) {
			report.Duplicates++
			metrics.RecordRumorDuplicate()
			continue
		}
		fresh = append(fresh, item)
	}

	for _, item := range fresh {
		if !s.rumorQueue.Enqueue(ctx, item) {
			// Full queue: forget the link so a later cycle retries it.
			s.deduper.Unrecord(ctx, item.Link)
			report.Dropped++
			continue
		}
		report.Enqueued++
		metrics.RecordRumorIngested()
	}

	s.mu.Lock()
	s.lastSync = report.StartedAt
	s.lastRumors = items
	s.mu.Unlock()

	report.DurationMS = time.Since(report.StartedAt).Milliseconds()
	metrics.RecordSyncCycle(float64(report.DurationMS))
	metrics.UpdateLastSyncUnix(report.StartedAt.Unix())

	s.logger.Info(ctx, "sync cycle completed",
		logger.Int("fetched", report.Fetched),
		logger.Int("enqueued", report.Enqueued),
		logger.Int("duplicates", report.Duplicates),
		logger.Int("dropped", report.Dropped),
		logger.Int64("duration_ms", report.DurationMS),
	)

	return report, nil
}

// startScheduler wires the cron job that triggers periodic sync cycles.
// Called under s.mu with the service about to be marked started, so the
// job body re-checks nothing and relies on RunSyncCycle's own guards.
func (s *Service) startScheduler(ctx context.Context) error {
	if s.syncSpec == "" || len(s.sources) == 0 {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(s.syncSpec, func() {
		if _, err := s.RunSyncCycle(ctx); err != nil {
			s.logger.Warn(ctx, "scheduled sync cycle failed", logger.Error(err))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	s.scheduler = c
	return nil
}
