package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/niguel07/quizforge/internal/domain/model"
	"github.com/niguel07/quizforge/internal/domain/scoring"
	"github.com/niguel07/quizforge/pkg/metrics"
)

// SessionStore implements Store with a mutex-guarded map and a JSON
// snapshot file. The map is the source of truth; the file is a persisted
// copy rewritten wholesale after every mutation.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session

	path         string
	clock        func() time.Time
	historyLimit int
}

// NewSessionStore creates a session store with configuration options.
// Call Load before serving traffic to restore the persisted snapshot.
func NewSessionStore(opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]model.Session),
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory state with the persisted snapshot.
// A missing file leaves the store empty; a file that cannot be read
// wraps ErrSnapshotRead and one that cannot be parsed wraps
// ErrCorruptSnapshot. Both must be treated as fatal by the caller.
func (s *SessionStore) Load(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	loaded, err := loadSnapshot(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions = loaded
	s.mu.Unlock()

	metrics.UpdateSessionCount(len(loaded))
	return nil
}

// SubmitAnswer implements Store.
func (s *SessionStore) SubmitAnswer(ctx context.Context, username string, questionID int, correct bool) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[username]
	if !ok {
		sess = model.Session{Username: username}
	}
	sess = scoring.Apply(sess, questionID, correct, s.clock())
	if s.historyLimit > 0 {
		sess = scoring.Trim(sess, s.historyLimit)
	}
	s.sessions[username] = sess

	metrics.RecordSubmission(correct)
	metrics.UpdateSessionCount(len(s.sessions))

	// The in-memory update stands even when the flush fails; the error is
	// surfaced, not swallowed, and not retried.
	if err := s.flushLocked(); err != nil {
		return sess.Clone(), err
	}
	return sess.Clone(), nil
}

// Get implements Store.
func (s *SessionStore) Get(ctx context.Context, username string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[username]
	if !ok {
		return model.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, username)
	}
	return sess.Clone(), nil
}

// Usernames implements Store.
func (s *SessionStore) Usernames(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.sessions))
	for username := range s.sessions {
		out = append(out, username)
	}
	sort.Strings(out)
	return out
}

// Delete implements Store.
func (s *SessionStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[username]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, username)
	}
	delete(s.sessions, username)

	metrics.UpdateSessionCount(len(s.sessions))

	return s.flushLocked()
}

// TopN implements Store.
func (s *SessionStore) TopN(ctx context.Context, n int) ([]model.LeaderboardEntry, int, error) {
	if n < 1 {
		return nil, 0, ErrInvalidLimit
	}

	s.mu.RLock()
	entries := make([]model.LeaderboardEntry, 0, len(s.sessions))
	for _, sess := range s.sessions {
		entries = append(entries, sess.Entry())
	}
	s.mu.RUnlock()

	total := len(entries)

	// Score desc, accuracy desc, then username asc so repeated calls over
	// unchanged data return the same order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Accuracy != entries[j].Accuracy {
			return entries[i].Accuracy > entries[j].Accuracy
		}
		return entries[i].Username < entries[j].Username
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	metrics.RecordLeaderboardQuery()
	return entries, total, nil
}

// Count implements Store.
func (s *SessionStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Flush implements Store.
func (s *SessionStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked rewrites the snapshot file. Must be called with the write
// lock held so whole-file writes are serialized with mutations.
func (s *SessionStore) flushLocked() error {
	if s.path == "" {
		return nil
	}

	start := time.Now()
	if err := writeSnapshot(s.path, s.sessions); err != nil {
		metrics.RecordSnapshotWriteError()
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	metrics.RecordSnapshotWrite(float64(time.Since(start).Milliseconds()))
	return nil
}
