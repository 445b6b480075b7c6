package repository

import "time"

// Option applies a configuration option to the SessionStore.
type Option func(*SessionStore)

// WithPath sets the snapshot file path. An empty path keeps the store
// memory-only, which tests of pure store behavior rely on.
func WithPath(path string) Option {
	return func(s *SessionStore) {
		s.path = path
	}
}

// WithClock sets the time source used for session timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *SessionStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithHistoryLimit caps each session's answer history at the most recent
// limit records. Zero keeps the history unbounded.
func WithHistoryLimit(limit int) Option {
	return func(s *SessionStore) {
		if limit >= 0 {
			s.historyLimit = limit
		}
	}
}
