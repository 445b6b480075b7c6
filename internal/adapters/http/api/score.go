package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/niguel07/quizforge/internal/domain/model"
)

// ScoreHandler serves answer submission, session lookup and the
// leaderboard.
type ScoreHandler struct {
	deps Dependencies
}

func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleSubmit records an answer for a user. The question must exist in
// the dataset. When selected_answer is supplied the correctness is
// derived server side, otherwise the correct flag is trusted as sent.
func (h *ScoreHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	q := r.URL.Query()
	username := q.Get("username")

	questionID, err := strconv.Atoi(q.Get("question_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid question_id; must be an integer"))
		return
	}

	var correct bool
	if selected := q.Get("selected_answer"); selected != "" {
		graded, _, gradeErr := h.deps.ValidateAnswer(r.Context(), questionID, selected)
		if gradeErr != nil {
			translateError(w, gradeErr)
			return
		}
		correct = graded
	} else {
		correct, err = strconv.ParseBool(q.Get("correct"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid correct; must be a boolean"))
			return
		}
	}

	session, err := h.deps.SubmitAnswer(r.Context(), username, questionID, correct)
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type leaderboardResponse struct {
	TotalUsers  int                      `json:"total_users"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

// HandleLeaderboard returns the top users ranked by score.
func (h *ScoreHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	entries, total, err := h.deps.Leaderboard(r.Context(), limit)
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{TotalUsers: total, Leaderboard: entries})
}

type usersResponse struct {
	TotalUsers int      `json:"total_users"`
	Usernames  []string `json:"usernames"`
}

// HandleUsers lists every username with a recorded session.
func (h *ScoreHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	usernames := h.deps.Usernames(r.Context())
	writeJSON(w, http.StatusOK, usersResponse{TotalUsers: len(usernames), Usernames: usernames})
}

type resetResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// HandleSession serves GET and DELETE on /api/v1/score/{username}.
func (h *ScoreHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimPrefix(r.URL.Path, "/api/v1/score/")
	if username == "" || strings.Contains(username, "/") {
		writeError(w, http.StatusNotFound, "not_found", errors.New("unknown route"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		session, err := h.deps.UserSession(r.Context(), username)
		if err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	case http.MethodDelete:
		if err := h.deps.ResetSession(r.Context(), username); err != nil {
			translateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resetResponse{
			Message:  "session reset successfully",
			Username: username,
		})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}
