package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verdiblanco/rumormill/internal/feedsim"
)

// Default configuration constants.
const (
	defaultNumItems   = 200
	defaultNumSources = 3
	defaultSeed       = 1
	defaultTopN       = 50
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		listenAddr = flag.String("listen", "127.0.0.1:9090", "Address to serve the simulated feeds on")
		targetURL  = flag.String("target", "http://localhost:9080", "Base URL of the rumormill service")
		adminToken = flag.String("token", "", "Admin token for sync and player registration")
		numItems   = flag.Int("items", defaultNumItems, "Number of rumor items to generate")
		numSources = flag.Int("sources", defaultNumSources, "Number of simulated feed sources")
		seed       = flag.Int64("seed", defaultSeed, "Generation seed; same seed, same items")
		topN       = flag.Int("top", defaultTopN, "Number of trending entries to fetch")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated items (default: generated_items_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: feedsim_log_TIMESTAMP.log)")
		serveOnly  = flag.Bool("serve-only", false, "Serve feeds without driving the target service")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		feedsim.ShowHelp()
		return
	}

	// Setup logging
	if err := feedsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Serve-only mode runs until interrupted; drive mode gets a deadline.
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if *serveOnly {
		ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	} else {
		ctx, cancel = context.WithTimeout(context.Background(), defaultRunTimeout)
	}
	defer cancel()

	config := &feedsim.Config{
		ListenAddr: *listenAddr,
		TargetURL:  *targetURL,
		AdminToken: *adminToken,
		NumItems:   *numItems,
		NumSources: *numSources,
		Seed:       *seed,
		TopN:       *topN,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		ServeOnly:  *serveOnly,
		Verbose:    *verbose,
	}

	if err := feedsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
