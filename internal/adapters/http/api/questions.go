package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/niguel07/quizforge/internal/domain/dataset"
	"github.com/niguel07/quizforge/internal/domain/model"
)

// QuestionsHandler serves question retrieval and answer checking.
type QuestionsHandler struct {
	deps Dependencies
}

func NewQuestionsHandler(deps Dependencies) *QuestionsHandler {
	return &QuestionsHandler{deps: deps}
}

// Bounds for the limit query parameter on list endpoints.
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

func listLimit(r *http.Request) (int, error) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		return 0, err
	}
	if limit < 1 || limit > maxListLimit {
		return 0, errors.New("limit must be between 1 and " + strconv.Itoa(maxListLimit))
	}
	return limit, nil
}

// HandleQuestions dispatches /api/v1/questions/ subroutes.
func (h *QuestionsHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/questions/")

	switch {
	case rest == "":
		h.handleList(w, r)
	case rest == "random":
		h.handleRandom(w, r)
	case rest == "search":
		h.handleSearch(w, r)
	case rest == "answer":
		h.handleAnswer(w, r)
	case strings.HasPrefix(rest, "category/"):
		h.handleCategory(w, r, strings.TrimPrefix(rest, "category/"))
	case strings.HasPrefix(rest, "difficulty/"):
		h.handleDifficulty(w, r, strings.TrimPrefix(rest, "difficulty/"))
	default:
		h.handleByID(w, r, rest)
	}
}

// defaultPageLimit applies to the paginated question collection.
const defaultPageLimit = 20

type questionPageResponse struct {
	Items      []model.Question `json:"items"`
	Pagination dataset.PageInfo `json:"pagination"`
}

func (h *QuestionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if page < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("page must be at least 1"))
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if limit < 1 || limit > maxListLimit {
		writeError(w, http.StatusBadRequest, "bad_request",
			errors.New("limit must be between 1 and "+strconv.Itoa(maxListLimit)))
		return
	}

	items, info := h.deps.Dataset().Page(page, limit)
	writeJSON(w, http.StatusOK, questionPageResponse{Items: items, Pagination: info})
}

func (h *QuestionsHandler) handleRandom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	count, err := queryInt(r, "count", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if count < 1 || count > h.deps.MaxRandomCount() {
		writeError(w, http.StatusBadRequest, "bad_request",
			errors.New("count must be between 1 and "+strconv.Itoa(h.deps.MaxRandomCount())))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Dataset().Random(count))
}

func (h *QuestionsHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	limit, err := listLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	q := r.URL.Query()
	results, err := h.deps.Dataset().Search(q.Get("q"), q.Get("category"), q.Get("difficulty"), limit)
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

type answerRequest struct {
	QuestionID     int    `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

type answerResponse struct {
	QuestionID     int    `json:"question_id"`
	Correct        bool   `json:"correct"`
	CorrectAnswer  string `json:"correct_answer"`
	SelectedAnswer string `json:"selected_answer"`
	Explanation    string `json:"explanation"`
}

func (h *QuestionsHandler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid request body"))
		return
	}
	correct, question, err := h.deps.ValidateAnswer(r.Context(), req.QuestionID, req.SelectedAnswer)
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		QuestionID:     question.ID,
		Correct:        correct,
		CorrectAnswer:  question.Answer,
		SelectedAnswer: strings.ToUpper(strings.TrimSpace(req.SelectedAnswer)),
		Explanation:    question.Explanation,
	})
}

func (h *QuestionsHandler) handleCategory(w http.ResponseWriter, r *http.Request, category string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	limit, err := listLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	results := h.deps.Dataset().ByCategory(category, limit)
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "not_found",
			errors.New("no questions found for category: "+category))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *QuestionsHandler) handleDifficulty(w http.ResponseWriter, r *http.Request, level string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	limit, err := listLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	results := h.deps.Dataset().ByDifficulty(level, limit)
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "not_found",
			errors.New("no questions found for difficulty: "+level))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *QuestionsHandler) handleByID(w http.ResponseWriter, r *http.Request, raw string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid question id"))
		return
	}
	question, err := h.deps.Dataset().ByID(id)
	if err != nil {
		translateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}
