package feedsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/verdiblanco/rumormill/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "feedsim_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the feed simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Rumormill Feed Simulator
========================

Serves deterministic transfer-rumor RSS feeds and optionally drives a
running rumormill instance through a full sync-and-verify cycle. The target
service must be configured with the simulated feed URLs, e.g.
http://127.0.0.1:9090/feeds/transfer-talk.xml.

Usage:
  go run cmd/feedgen/main.go [options]

Options:
  -listen string
        Address to serve the simulated feeds on (default "127.0.0.1:9090")
  -target string
        Base URL of the rumormill service (default "http://localhost:9080")
  -token string
        Admin token for sync and player registration
  -items int
        Number of rumor items to generate (default 200)
  -sources int
        Number of simulated feed sources (default 3)
  -seed int
        Generation seed; same seed, same items (default 1)
  -top int
        Number of trending entries to fetch (default 50)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated items (default: generated_items_TIMESTAMP.json)
  -log string
        Log file for run output (default: feedsim_log_TIMESTAMP.log)
  -serve-only
        Serve feeds without driving the target service
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Serve feeds only, for a manually configured rumormill
  go run cmd/feedgen/main.go -serve-only -listen 127.0.0.1:9090

  # Drive a local service end to end
  go run cmd/feedgen/main.go -target http://localhost:9080 -token hunter2

  # Larger deterministic run
  go run cmd/feedgen/main.go -items 5000 -sources 5 -seed 42 -token hunter2
`)
}
