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
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if BILLABOT_CONFIG is set
//  3. env (prefix BILLABOT_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BILLABOT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BILLABOT_ADDR, BILLABOT_SLACK_TOKEN, ...
	// Map env keys like BILLABOT_FETCH_TIMEOUT_MS -> fetch_timeout_ms
	// (flat keys; underscores preserved to match the koanf tags).
	envProvider := env.Provider("BILLABOT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "billabot_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.TimeTrackingURL == "":
		return nil, fmt.Errorf("%w: timetracking_url must not be empty", ErrInvalidConfig)
	case cfg.FetchTimeoutMS <= 0:
		return nil, fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	case cfg.FetchMaxRetries < 0:
		return nil, fmt.Errorf("%w: fetch_max_retries must not be negative", ErrInvalidConfig)
	case cfg.SenderCount <= 0:
		return nil, fmt.Errorf("%w: sender_count must be positive", ErrInvalidConfig)
	case len(cfg.Departments) == 0:
		return nil, fmt.Errorf("%w: departments must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
