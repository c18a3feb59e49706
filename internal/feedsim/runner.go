package feedsim

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/verdiblanco/rumormill/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// settleDelay gives the worker pool time to drain the queue before the
// trending board is read back.
const settleDelay = 3 * time.Second

// Run executes a complete feed simulation: serve generated feeds, point the
// target service at them, trigger a sync, and verify the trending board.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting feed simulation",
		logger.String("listenAddr", config.ListenAddr),
		logger.String("targetURL", config.TargetURL),
		logger.Int("items", config.NumItems),
		logger.Int("sources", config.NumSources),
		logger.Any("seed", config.Seed),
		logger.Any("serveOnly", config.ServeOnly))

	// Step 1: Generate the deterministic item set.
	items, err := GenerateItems(ctx, config)
	if err != nil {
		return fmt.Errorf("item generation failed: %w", err)
	}
	stats.ItemsGenerated = len(items)
	for _, item := range items {
		if item.Player == "" {
			stats.NoiseItems++
		}
	}

	// Step 2: Serve the feeds.
	server, err := NewServer(items)
	if err != nil {
		return fmt.Errorf("feed server setup failed: %w", err)
	}
	if err := server.Start(ctx, config.ListenAddr); err != nil {
		return fmt.Errorf("feed server start failed: %w", err)
	}
	defer func() {
		if err := server.Stop(context.Background()); err != nil {
			logger.Get().Warn(context.Background(), "feed server stop failed", logger.Error(err))
		}
	}()

	for _, source := range server.Sources() {
		log.Printf("📡 Serving feed: %s", server.URL(source))
	}

	if config.ServeOnly {
		log.Println("🔁 Serve-only mode; press Ctrl+C to stop")
		<-ctx.Done()
		return nil
	}

	// Step 3: Check the target service is up.
	client := newHTTPClient(config.Timeout, config.AdminToken)
	if err := checkServiceHealth(ctx, client, config.TargetURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}
	log.Println("✅ Target service is healthy")

	// Step 4: Register the roster so mentions can match.
	for _, player := range Roster() {
		created, err := createPlayer(ctx, client, config.TargetURL, player)
		if err != nil {
			return fmt.Errorf("player registration failed for %s: %w", player.Name, err)
		}
		if created {
			stats.PlayersCreated++
		}
	}
	log.Printf("👥 Registered %d new players (%d already present)",
		stats.PlayersCreated, len(Roster())-stats.PlayersCreated)

	// Step 5: Trigger a sync cycle.
	report, err := triggerSync(ctx, client, config.TargetURL)
	if err != nil {
		return fmt.Errorf("sync trigger failed: %w", err)
	}
	stats.ItemsFetched = report.Fetched
	stats.ItemsEnqueued = report.Enqueued
	log.Printf("🔄 Sync cycle: fetched=%d enqueued=%d duplicates=%d dropped=%d",
		report.Fetched, report.Enqueued, report.Duplicates, report.Dropped)

	// Step 6: Wait for the workers to process the queue.
	log.Println("⏳ Waiting for rumor processing...")
	select {
	case <-ctx.Done():
		return fmt.Errorf("cancelled while waiting for processing: %w", ctx.Err())
	case <-time.After(settleDelay):
	}

	// Step 7: Read back the trending board and verify it.
	entries, err := getTrending(ctx, client, config.TargetURL, config.TopN)
	if err != nil {
		return fmt.Errorf("trending retrieval failed: %w", err)
	}
	stats.TrendingEntries = len(entries)

	if err := verifyTrending(items, entries, config.Verbose); err != nil {
		return fmt.Errorf("trending verification failed: %w", err)
	}

	// Step 8: Save the generated items for later inspection.
	if err := saveItemsToFile(ctx, config, items); err != nil {
		logger.Get().Warn(ctx, "failed to save items to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// verifyTrending checks the board against the generator's expected mention
// counts: every mentioned player present, ordered by count descending.
func verifyTrending(items []Item, entries []TrendingEntry, verbose bool) error {
	log.Println("🔍 Verifying trending board...")

	expected := ExpectedMentions(items)
	if len(entries) == 0 {
		return fmt.Errorf("trending board is empty, expected %d players", len(expected))
	}

	// The board orders by mention recency, so only the per-player counts are
	// checked here, not the row order.
	got := make(map[string]int, len(entries))
	for _, entry := range entries {
		got[entry.Name] = entry.RumorCount
	}

	mismatches := 0
	for name, count := range expected {
		if got[name] != count {
			mismatches++
			log.Printf("⚠️  %s: expected %d mentions, board shows %d", name, count, got[name])
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d players have mismatched mention counts", mismatches)
	}

	log.Println("✅ Trending board matches generated mentions")
	if verbose {
		displayBoard(entries)
	}
	return nil
}

// displayBoard prints the trending entries.
func displayBoard(entries []TrendingEntry) {
	topN := 10
	if len(entries) < topN {
		topN = len(entries)
	}

	log.Printf("🏆 Top %d trending players:", topN)
	for i := 0; i < topN; i++ {
		entry := entries[i]
		log.Printf("   %d. %s - %d rumors", entry.Rank, entry.Name, entry.RumorCount)
	}
}

// saveItemsToFile saves the generated items to a JSON file.
func saveItemsToFile(ctx context.Context, config *Config, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("no items to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_items_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if err := writeItemsJSON(file, items); err != nil {
		return err
	}

	logger.Get().Info(ctx, "items saved to file", logger.String("filename", filename))
	return nil
}

// writeItemsJSON writes items as a JSON array, one item per line.
func writeItemsJSON(file *os.File, items []Item) error {
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, item := range items {
		jsonData, err := marshalItem(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item %d: %w", i, err)
		}
		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write item %d: %w", i, err)
		}
		if i < len(items)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("itemsGenerated", stats.ItemsGenerated),
		logger.Int("noiseItems", stats.NoiseItems),
		logger.Int("playersCreated", stats.PlayersCreated),
		logger.Int("itemsFetched", stats.ItemsFetched),
		logger.Int("itemsEnqueued", stats.ItemsEnqueued),
		logger.Int("trendingEntries", stats.TrendingEntries),
		logger.String("duration", stats.Duration.String()))
}

// expectedOrder returns player names sorted by expected mention count, used
// by tests to assert board order.
func expectedOrder(items []Item) []string {
	expected := ExpectedMentions(items)
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return expected[names[i]] > expected[names[j]]
	})
	return names
}
