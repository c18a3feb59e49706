package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/verdiblanco/rumormill/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.RumorQueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
				convey.So(cfg.MaxTrendingLimit, convey.ShouldEqual, 100)
				convey.So(cfg.SyncCron, convey.ShouldEqual, "@every 15m")
				convey.So(cfg.FeatureFlags["rumor_sync"], convey.ShouldBeTrue)
				convey.So(cfg.EnrichDescriptions, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RUMORMILL_ADDR", ":8080")
			_ = os.Setenv("RUMORMILL_QUEUE_SIZE", "500")
			_ = os.Setenv("RUMORMILL_WORKER_COUNT", "16")
			_ = os.Setenv("RUMORMILL_FETCH_TIMEOUT_MS", "2500")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RumorQueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 2500)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
queue_size: 2000
sync_cron: "@every 5m"
feeds:
  - name: transfer-talk
    url: https://rumors.example/feed.xml
  - name: mercato
    url: https://mercato.example/atom.xml
feature_flags:
  rumor_sync: false
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RUMORMILL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.RumorQueueSize, convey.ShouldEqual, 2000)
				convey.So(cfg.SyncCron, convey.ShouldEqual, "@every 5m")
				convey.So(cfg.Feeds, convey.ShouldHaveLength, 2)
				convey.So(cfg.Feeds[0].Name, convey.ShouldEqual, "transfer-talk")
				convey.So(cfg.Feeds[1].URL, convey.ShouldEqual, "https://mercato.example/atom.xml")
				convey.So(cfg.FeatureFlags["rumor_sync"], convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
queue_size: 2000
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RUMORMILL_CONFIG", tmpFile)
			_ = os.Setenv("RUMORMILL_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RumorQueueSize, convey.ShouldEqual, 2000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RUMORMILL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("RUMORMILL_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()

		convey.Convey("When addr is empty", func() {
			_ = os.Setenv("RUMORMILL_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the fetch timeout is not positive", func() {
			_ = os.Setenv("RUMORMILL_FETCH_TIMEOUT_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a feed entry is incomplete", func() {
			tmpFile := createTempConfigFile(`
feeds:
  - name: nameless
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("RUMORMILL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should reject the feed", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When two feeds share a name", func() {
			tmpFile := createTempConfigFile(`
feeds:
  - name: twin
    url: https://a.example/feed.xml
  - name: twin
    url: https://b.example/feed.xml
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("RUMORMILL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should reject the duplicate", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "twin")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RUMORMILL_CONFIG",
		"RUMORMILL_ADDR",
		"RUMORMILL_QUEUE_SIZE",
		"RUMORMILL_WORKER_COUNT",
		"RUMORMILL_DEDUPE_SIZE",
		"RUMORMILL_FETCH_TIMEOUT_MS",
		"RUMORMILL_SYNC_CRON",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "rumormill-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
