package api

import (
	"net/http"

	"github.com/niguel07/quizforge/internal/domain/dataset"
)

// AnalyticsHandler serves dataset summaries and service metadata.
type AnalyticsHandler struct {
	deps Dependencies
}

func NewAnalyticsHandler(deps Dependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

type infoResponse struct {
	App              string   `json:"app"`
	Version          string   `json:"version"`
	TotalQuestions   int      `json:"total_questions"`
	Categories       []string `json:"categories"`
	DifficultyLevels []string `json:"difficulty_levels"`
}

// HandleInfo describes the running service and its dataset.
func (h *AnalyticsHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	d := h.deps.Dataset()
	writeJSON(w, http.StatusOK, infoResponse{
		App:              appName,
		Version:          appVersion,
		TotalQuestions:   d.Len(),
		Categories:       d.Categories(),
		DifficultyLevels: d.Difficulties(),
	})
}

// HandleStats serves the aggregate dataset statistics.
func (h *AnalyticsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Dataset().Stats())
}

type categoriesResponse struct {
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

func (h *AnalyticsHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	categories := h.deps.Dataset().Categories()
	writeJSON(w, http.StatusOK, categoriesResponse{Count: len(categories), Categories: categories})
}

type difficultiesResponse struct {
	Count            int      `json:"count"`
	DifficultyLevels []string `json:"difficulty_levels"`
}

func (h *AnalyticsHandler) HandleDifficulties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	levels := h.deps.Dataset().Difficulties()
	writeJSON(w, http.StatusOK, difficultiesResponse{Count: len(levels), DifficultyLevels: levels})
}

type countResponse struct {
	TotalQuestions int `json:"total_questions"`
}

// HandleCount reports the total question count on its own.
func (h *AnalyticsHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{TotalQuestions: h.deps.Dataset().Len()})
}

type summaryResponse struct {
	Summary dataset.Stats `json:"summary"`
}

// HandleSummary bundles every dataset statistic into one response for
// single-request retrieval.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: h.deps.Dataset().Stats()})
}

type categoryStatsResponse struct {
	TotalCategories int                    `json:"total_categories"`
	Stats           []dataset.CategoryStat `json:"stats"`
}

// HandleCategoryStats serves the per-category breakdown with
// percentages and difficulty mix.
func (h *AnalyticsHandler) HandleCategoryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	stats := h.deps.Dataset().CategoryStats()
	writeJSON(w, http.StatusOK, categoryStatsResponse{TotalCategories: len(stats), Stats: stats})
}

type difficultyStatsResponse struct {
	TotalLevels int                      `json:"total_levels"`
	Stats       []dataset.DifficultyStat `json:"stats"`
}

// HandleDifficultyStats serves the per-level breakdown with
// percentages.
func (h *AnalyticsHandler) HandleDifficultyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	stats := h.deps.Dataset().DifficultyStats()
	writeJSON(w, http.StatusOK, difficultyStatsResponse{TotalLevels: len(stats), Stats: stats})
}

type topicsResponse struct {
	Count  int      `json:"count"`
	Topics []string `json:"topics"`
}

func (h *AnalyticsHandler) HandleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	topics := h.deps.Dataset().Topics()
	writeJSON(w, http.StatusOK, topicsResponse{Count: len(topics), Topics: topics})
}
