// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/niguel07/quizforge/internal/adapters/repository"
	"github.com/niguel07/quizforge/internal/app"
	"github.com/niguel07/quizforge/internal/domain/dataset"
	"github.com/niguel07/quizforge/internal/domain/model"
	"github.com/niguel07/quizforge/internal/domain/scoring"
)

// Application identity served by the health and info endpoints.
const (
	appName    = "QuizForge API"
	appVersion = "1.0.0"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Scoring operations.
	SubmitAnswer(ctx context.Context, username string, questionID int, correct bool) (model.Session, error)
	UserSession(ctx context.Context, username string) (model.Session, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, int, error)
	Usernames(ctx context.Context) []string
	ResetSession(ctx context.Context, username string) error

	// Question operations.
	ValidateAnswer(ctx context.Context, questionID int, selected string) (bool, model.Question, error)
	Dataset() *dataset.Dataset
	MaxRandomCount() int

	// Monitoring.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	questionsHandler *QuestionsHandler
	scoreHandler     *ScoreHandler
	analyticsHandler *AnalyticsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(deps),
		questionsHandler: NewQuestionsHandler(deps),
		scoreHandler:     NewScoreHandler(deps),
		analyticsHandler: NewAnalyticsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux, most specific first.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/api/v1/info", instrument(s.analyticsHandler.HandleInfo, "info"))
	mux.HandleFunc("/api/v1/stats", instrument(s.analyticsHandler.HandleStats, "dataset_stats"))
	mux.HandleFunc("/api/v1/count", instrument(s.analyticsHandler.HandleCount, "count"))
	mux.HandleFunc("/api/v1/summary", instrument(s.analyticsHandler.HandleSummary, "summary"))
	mux.HandleFunc("/api/v1/categories", instrument(s.analyticsHandler.HandleCategories, "categories"))
	mux.HandleFunc("/api/v1/categories/stats", instrument(s.analyticsHandler.HandleCategoryStats, "category_stats"))
	mux.HandleFunc("/api/v1/difficulties", instrument(s.analyticsHandler.HandleDifficulties, "difficulties"))
	mux.HandleFunc("/api/v1/difficulty/stats", instrument(s.analyticsHandler.HandleDifficultyStats, "difficulty_stats"))
	mux.HandleFunc("/api/v1/topics", instrument(s.analyticsHandler.HandleTopics, "topics"))
	mux.HandleFunc("/api/v1/questions/", instrument(s.questionsHandler.HandleQuestions, "questions"))
	mux.HandleFunc("/api/v1/score/submit", instrument(s.scoreHandler.HandleSubmit, "score_submit"))
	mux.HandleFunc("/api/v1/score/leaderboard", instrument(s.scoreHandler.HandleLeaderboard, "score_leaderboard"))
	mux.HandleFunc("/api/v1/score/users", instrument(s.scoreHandler.HandleUsers, "score_users"))
	mux.HandleFunc("/api/v1/score/", instrument(s.scoreHandler.HandleSession, "score_session"))
	mux.HandleFunc("/service/stats", instrument(s.statsHandler.HandleStats, "service_stats"))
}

// instrument applies the shared middleware chain to a handler.
func instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// translateError maps domain errors onto transport status codes.
// NotFound outcomes are routine; everything unrecognized is a 500.
func translateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, dataset.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrEmptyUsername),
		errors.Is(err, scoring.ErrInvalidOption),
		errors.Is(err, dataset.ErrSearchTerm),
		errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrSnapshotWrite):
		writeError(w, http.StatusInternalServerError, "persistence_failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// queryInt parses an integer query parameter, with a fallback when the
// parameter is absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + "; must be an integer")
	}
	return n, nil
}
