// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/niguel07/quizforge/internal/adapters/repository"
	"github.com/niguel07/quizforge/internal/domain/dataset"
	"github.com/niguel07/quizforge/internal/domain/model"
	"github.com/niguel07/quizforge/internal/domain/scoring"
	"github.com/niguel07/quizforge/pkg/logger"
	"github.com/niguel07/quizforge/pkg/metrics"
)

// Default service limits, overridable via options.
const (
	defaultMaxLeaderboardLimit = 50
	defaultLeaderboardLimit    = 10
	defaultMaxRandomCount      = 100
)

// Service wires the question dataset and the session store behind the
// operations the HTTP layer consumes.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	dataset *dataset.Dataset

	maxLeaderboardLimit     int
	defaultLeaderboardLimit int
	maxRandomCount          int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the session store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataset sets the question dataset.
func WithDataset(d *dataset.Dataset) Option {
	return func(s *Service) {
		if d != nil {
			s.dataset = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard queries.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithDefaultLeaderboardLimit sets the limit used when none is given.
func WithDefaultLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLeaderboardLimit = limit
		}
	}
}

// WithMaxRandomCount caps random question sampling.
func WithMaxRandomCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.maxRandomCount = count
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxLeaderboardLimit:     defaultMaxLeaderboardLimit,
		defaultLeaderboardLimit: defaultLeaderboardLimit,
		maxRandomCount:          defaultMaxRandomCount,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start restores the persisted session snapshot. A corrupt snapshot is
// returned as an error; the caller must treat it as fatal rather than
// serving from an assumed-empty store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil || s.dataset == nil {
		return ErrNotConfigured
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if err := s.store.Load(ctx); err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}

	metrics.UpdateDatasetQuestions(s.dataset.Len())

	s.started = true
	s.logger.Info(ctx, "quiz service started",
		logger.Int("questions", s.dataset.Len()),
		logger.Int("sessions", s.store.Count(ctx)),
	)
	return nil
}

// Stop flushes the session store. Flush errors are logged, not returned;
// shutdown proceeds either way.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Flush(ctx); err != nil {
		s.logger.Error(ctx, "final session flush failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "quiz service stopped")
}

// SubmitAnswer validates the submission and records it on the user's
// session. The question must exist in the dataset; the correctness flag
// is supplied by the caller, which grades against the dataset before
// calling in.
func (s *Service) SubmitAnswer(ctx context.Context, username string, questionID int, correct bool) (model.Session, error) {
	if strings.TrimSpace(username) == "" {
		return model.Session{}, ErrEmptyUsername
	}
	if !s.dataset.Exists(questionID) {
		return model.Session{}, fmt.Errorf("%w: id %d", dataset.ErrQuestionNotFound, questionID)
	}

	sess, err := s.store.SubmitAnswer(ctx, username, questionID, correct)
	if err != nil {
		s.logger.Error(ctx, "submission persisted in memory only",
			logger.String("username", username),
			logger.Error(err),
		)
		return sess, err
	}

	s.logger.Debug(ctx, "answer recorded",
		logger.String("username", username),
		logger.Int("question_id", questionID),
		logger.Bool("correct", correct),
	)
	return sess, nil
}

// UserSession returns the full session for a username.
func (s *Service) UserSession(ctx context.Context, username string) (model.Session, error) {
	return s.store.Get(ctx, username)
}

// Leaderboard returns up to limit ranked entries plus the total number of
// users. A non-positive limit falls back to the configured default; the
// configured maximum caps it.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, int, error) {
	if limit <= 0 {
		limit = s.defaultLeaderboardLimit
	}
	if limit > s.maxLeaderboardLimit {
		return nil, 0, fmt.Errorf("%w: %d exceeds maximum %d", repository.ErrInvalidLimit, limit, s.maxLeaderboardLimit)
	}
	return s.store.TopN(ctx, limit)
}

// Usernames returns every username with a session, sorted.
func (s *Service) Usernames(ctx context.Context) []string {
	return s.store.Usernames(ctx)
}

// ResetSession deletes a user's session and persists the removal.
func (s *Service) ResetSession(ctx context.Context, username string) error {
	if err := s.store.Delete(ctx, username); err != nil {
		return err
	}
	s.logger.Info(ctx, "session reset", logger.String("username", username))
	return nil
}

// ValidateAnswer grades a selected option against the dataset and
// returns the question alongside the verdict.
func (s *Service) ValidateAnswer(ctx context.Context, questionID int, selected string) (bool, model.Question, error) {
	q, err := s.dataset.ByID(questionID)
	if err != nil {
		return false, model.Question{}, err
	}
	correct, err := scoring.Grade(q, selected)
	if err != nil {
		return false, model.Question{}, err
	}
	return correct, q, nil
}

// Dataset exposes the read-only question dataset to the HTTP layer.
func (s *Service) Dataset() *dataset.Dataset {
	return s.dataset
}

// MaxRandomCount returns the configured random sampling cap.
func (s *Service) MaxRandomCount() int {
	return s.maxRandomCount
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"total_questions": 0,
		"total_sessions":  0,
	}
	if s.dataset != nil {
		stats["total_questions"] = s.dataset.Len()
	}
	if s.store != nil {
		count := s.store.Count(ctx)
		stats["total_sessions"] = count
		metrics.UpdateSessionCount(count)
	}
	return stats
}
