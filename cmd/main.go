package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verdiblanco/rumormill/internal/adapters/feeds"
	"github.com/verdiblanco/rumormill/internal/adapters/http/api"
	"github.com/verdiblanco/rumormill/internal/adapters/http/site"
	"github.com/verdiblanco/rumormill/internal/adapters/http/swagger"
	service "github.com/verdiblanco/rumormill/internal/app"
	"github.com/verdiblanco/rumormill/internal/auth"
	"github.com/verdiblanco/rumormill/internal/config"
	"github.com/verdiblanco/rumormill/internal/flags"
	"github.com/verdiblanco/rumormill/pkg/logger"
	"github.com/verdiblanco/rumormill/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	opts := []service.Option{
		service.WithLogger(loggerInstance),
		service.WithSources(feedSources(cfg)),
		service.WithFetchTimeout(time.Duration(cfg.FetchTimeoutMS) * time.Millisecond),
		service.WithSyncSchedule(cfg.SyncCron),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.RumorQueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithMaxAliasWords(cfg.MaxAliasWords),
	}
	if cfg.EnrichDescriptions {
		opts = append(opts, service.WithDescriptionEnrichment(time.Duration(cfg.EnrichTimeoutMS)*time.Millisecond))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API reference under /swagger
	swagger.Register(ctx, mux)

	// Register the rendered trending page at /
	site.Register(ctx, mux, svc)

	// Register business API routes with the service dependency.
	identity := auth.NewTokenAuthenticator(cfg.AdminTokens)
	featureFlags := flags.NewStaticProvider(cfg.FeatureFlags)
	apiServer := api.NewServer(svc, identity, featureFlags, cfg.MaxTrendingLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// feedSources converts configured feeds to fetcher sources.
func feedSources(cfg *config.Config) []feeds.Source {
	sources := make([]feeds.Source, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		sources[i] = feeds.Source{Name: f.Name, URL: f.URL}
	}
	return sources
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// service-level gauges Stats derives from live components.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(ctx, svc)
		}
	}
}

// updateServiceMetrics refreshes gauges from the service stats snapshot.
// Stats already pushes queue, player, and alias gauges; the sync gauge is
// refreshed here so it survives scrapes between cycles.
func updateServiceMetrics(ctx context.Context, svc *service.Service) {
	stats := svc.Stats(ctx)

	if lastSync, ok := stats["lastSyncUnix"].(int64); ok && lastSync > 0 {
		metrics.UpdateLastSyncUnix(lastSync)
	}
}
