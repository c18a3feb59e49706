// Package service wires the domain components together and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/verdiblanco/rumormill/internal/adapters/feeds"
	rumorqueue "github.com/verdiblanco/rumormill/internal/adapters/mq/queue"
	workerpool "github.com/verdiblanco/rumormill/internal/adapters/mq/worker"
	"github.com/verdiblanco/rumormill/internal/adapters/repository"
	"github.com/verdiblanco/rumormill/internal/domain/alias"
	"github.com/verdiblanco/rumormill/internal/domain/dedupe"
	"github.com/verdiblanco/rumormill/internal/domain/match"
	"github.com/verdiblanco/rumormill/internal/domain/merge"
	"github.com/verdiblanco/rumormill/internal/domain/model"
	"github.com/verdiblanco/rumormill/internal/domain/normalize"
	"github.com/verdiblanco/rumormill/internal/domain/types"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"
)

// Service implements the rumor ingestion and player registry system.
type Service struct {
	mu sync.RWMutex

	// Core components
	players    repository.Store
	aliases    alias.Index
	deduper    dedupe.Deduper
	rumorQueue rumorqueue.Queue
	matcher    match.Matcher
	merger     *merge.Engine
	fetcher    feeds.Fetcher
	workerPool *workerpool.Pool

	// Configuration
	sources       []feeds.Source
	fetchTimeout  time.Duration
	workerCount   int
	queueSize     int
	dedupeSize    int
	maxAliasWords int
	enrich        bool
	enrichTimeout time.Duration
	syncSpec      string

	// Sync state
	syncMu     sync.Mutex
	scheduler  *cron.Cron
	lastSync   time.Time
	lastRumors []model.RumorItem

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetchTimeout:  10 * time.Second,
		workerCount:   runtime.NumCPU() * 4,
		queueSize:     10_000,
		dedupeSize:    50_000,
		maxAliasWords: 4,
		logger:        nil, // resolved in Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting rumor service...")

	s.players = repository.NewMemStore(ctx)
	s.aliases = alias.NewInMemoryIndex()
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.rumorQueue = rumorqueue.NewInMemoryQueue(
		rumorqueue.WithCapacity(s.queueSize),
	)

	fetchOpts := []feeds.Option{
		feeds.WithTimeout(s.fetchTimeout),
	}
	if s.enrich {
		fetchOpts = append(fetchOpts, feeds.WithReadabilityEnrichment(s.enrichTimeout))
	}
	if s.fetcher == nil {
		s.fetcher = feeds.NewHTTPFetcher(s.sources, fetchOpts...)
	}

	s.matcher = match.NewTextMatcher(s.aliases, s.players,
		match.WithMaxAliasWords(s.maxAliasWords),
	)
	s.merger = merge.NewEngine(s.players, s.aliases)

	workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.workerPool = workerpool.NewPool(s.workerCount, s.rumorQueue, s.matcher)
	s.workerPool.Start(workerCtx)

	if err := s.startScheduler(workerCtx); err != nil {
		cancel()
		return err
	}

	s.started = true
	s.logger.Info(ctx, "rumor service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("sources", len(s.sources)),
	)

	return nil
}

// Stop gracefully shuts down the service. The scheduler is stopped outside
// the service lock because a mid-flight sync cycle needs the lock to
// publish its results.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	sched := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping rumor service...")

	if sched != nil {
		<-sched.Stop().Done()
	}

	if q, ok := s.rumorQueue.(*rumorqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.logger.Info(ctx, "rumor service stopped")
}

// Trending returns the top players ranked by recency and rumor volume.
func (s *Service) Trending(ctx context.Context, limit int) ([]types.TrendingEntry, error) {
	players, err := s.players.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]types.TrendingEntry, len(players))
	for i, p := range players {
		entries[i] = types.NewTrendingEntry(i+1, p)
	}
	return entries, nil
}

// Player returns the public view of a single player record.
func (s *Service) Player(ctx context.Context, id string) (types.PlayerView, error) {
	p, err := s.players.Get(ctx, id)
	if err != nil {
		return types.PlayerView{}, err
	}
	return types.NewPlayerView(p), nil
}

// CreatePlayer registers a new canonical player. The display name's
// normalized form is registered as the first alias; extra aliases are
// normalized and registered too. A name owned by another player fails the
// whole creation.
func (s *Service) CreatePlayer(ctx context.Context, name string, extraAliases []string) (types.PlayerView, error) {
	normalized := normalize.Normalize(name)
	if normalized == "" {
		return types.PlayerView{}, ErrEmptyName
	}

	id := uuid.NewString()

	names := []string{normalized}
	for _, raw := range extraAliases {
		n := normalize.Normalize(raw)
		if n == "" || n == normalized {
			continue
		}
		names = append(names, n)
	}

	var registered []string
	for _, n := range names {
		if err := s.aliases.Register(ctx, n, id); err != nil {
			for _, r := range registered {
				s.aliases.Unregister(ctx, r, id)
			}
			return types.PlayerView{}, err
		}
		registered = append(registered, n)
	}

	p := model.Player{
		ID:             id,
		Name:           name,
		NormalizedName: normalized,
		Aliases:        names[1:],
	}
	if err := s.players.Create(ctx, p); err != nil {
		for _, r := range registered {
			s.aliases.Unregister(ctx, r, id)
		}
		return types.PlayerView{}, err
	}

	metrics.RecordPlayerCreated()
	metrics.UpdateTrackedAliases(s.aliases.Size())
	s.logger.Info(ctx, "player created",
		logger.String("player_id", id),
		logger.String("normalized", normalized),
	)

	return types.NewPlayerView(p), nil
}

// AddAlias registers an additional normalized alias for a player.
func (s *Service) AddAlias(ctx context.Context, playerID, raw string) (types.PlayerView, error) {
	normalized := normalize.Normalize(raw)
	if normalized == "" {
		return types.PlayerView{}, ErrEmptyName
	}

	p, err := s.players.Get(ctx, playerID)
	if err != nil {
		return types.PlayerView{}, err
	}
	if p.Retired() {
		return types.PlayerView{}, repository.ErrRetired
	}

	if err := s.aliases.Register(ctx, normalized, playerID); err != nil {
		return types.PlayerView{}, err
	}
	if err := s.players.AddAlias(ctx, playerID, normalized); err != nil {
		s.aliases.Unregister(ctx, normalized, playerID)
		return types.PlayerView{}, err
	}

	metrics.UpdateTrackedAliases(s.aliases.Size())

	p, err = s.players.Get(ctx, playerID)
	if err != nil {
		return types.PlayerView{}, err
	}
	return types.NewPlayerView(p), nil
}

// Merge consolidates a duplicate player into a primary record.
func (s *Service) Merge(ctx context.Context, primaryID, duplicateID string) (model.MergeResult, error) {
	res, err := s.merger.Merge(ctx, primaryID, duplicateID)
	if err != nil {
		return model.MergeResult{}, err
	}
	metrics.UpdateTrackedAliases(s.aliases.Size())
	return res, nil
}

// Rumors returns the rumors retrieved by the most recent sync cycle,
// newest first.
func (s *Service) Rumors(ctx context.Context) []types.RumorView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]types.RumorView, len(s.lastRumors))
	for i, r := range s.lastRumors {
		views[i] = types.NewRumorView(r)
	}
	return views
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"dedupeSize":   s.dedupeSize,
		"sources":      len(s.sources),
		"lastSyncUnix": int64(0),
	}

	if !s.lastSync.IsZero() {
		stats["lastSyncUnix"] = s.lastSync.Unix()
	}

	if s.started {
		queueLen := s.rumorQueue.Len(ctx)
		totalPlayers := s.players.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalPlayers"] = totalPlayers
		stats["trackedAliases"] = s.aliases.Size()
		stats["seenRumors"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalPlayers(totalPlayers)
		metrics.UpdateTrackedAliases(s.aliases.Size())
	}

	return stats
}

// ensureStarted guards operations that need live components.
func (s *Service) ensureStarted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}
