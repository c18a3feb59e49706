package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if RUMORMILL_CONFIG is set
//  3. env (prefix RUMORMILL_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RUMORMILL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: RUMORMILL_ADDR, RUMORMILL_QUEUE_SIZE, ...
	// Map env keys like RUMORMILL_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RUMORMILL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rumormill_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.FetchTimeoutMS <= 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if cfg.MaxTrendingLimit < 1 {
		return fmt.Errorf("%w: max_trending_limit must be at least 1", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		if f.Name == "" || f.URL == "" {
			return fmt.Errorf("%w: feed entries need both name and url", ErrInvalidConfig)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate feed name %q", ErrInvalidConfig, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
