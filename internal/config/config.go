// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env vars
//   on top of them.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DataPath points at the question dataset JSON file.
	DataPath string `koanf:"data_path"`

	// SessionPath points at the persisted session snapshot file.
	SessionPath string `koanf:"session_path"`

	// MaxLeaderboardLimit caps the leaderboard limit query parameter.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DefaultLeaderboardLimit applies when no limit is given.
	DefaultLeaderboardLimit int `koanf:"default_leaderboard_limit"`

	// MaxRandomCount caps the count parameter of random question sets.
	MaxRandomCount int `koanf:"max_random_count"`

	// HistoryLimit caps each session's answer history; 0 keeps it
	// unbounded.
	HistoryLimit int `koanf:"history_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":8000",
		DataPath:                "docs/questions.json",
		SessionPath:             "data/sessions.json",
		MaxLeaderboardLimit:     50,
		DefaultLeaderboardLimit: 10,
		MaxRandomCount:          100,
		HistoryLimit:            0,
	}
}
