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
//  1. defaults (New())
//  2. file (YAML) if QUIZFORGE_CONFIG is set
//  3. env (prefix QUIZFORGE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("QUIZFORGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: QUIZFORGE_ADDR, QUIZFORGE_DATA_PATH, ...
	// mapped to the flat koanf keys on the struct.
	envProvider := env.Provider("QUIZFORGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "quizforge_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataPath == "":
		return nil, fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case cfg.SessionPath == "":
		return nil, fmt.Errorf("%w: session_path must not be empty", ErrInvalidConfig)
	case cfg.MaxLeaderboardLimit < 1:
		return nil, fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case cfg.DefaultLeaderboardLimit < 1 || cfg.DefaultLeaderboardLimit > cfg.MaxLeaderboardLimit:
		return nil, fmt.Errorf("%w: default_leaderboard_limit must be within 1..max_leaderboard_limit", ErrInvalidConfig)
	case cfg.HistoryLimit < 0:
		return nil, fmt.Errorf("%w: history_limit must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
