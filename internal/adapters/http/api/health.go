package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/niguel07/quizforge/pkg/metrics"
)

// HealthHandler serves liveness and Prometheus scrape endpoints.
type HealthHandler struct {
	deps    Dependencies
	scraper http.Handler
}

func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		scraper: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	App        string `json:"app"`
	Version    string `json:"version"`
	DataLoaded bool   `json:"data_loaded"`
}

// HandleHealth reports service liveness and whether the question
// dataset loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		App:        appName,
		Version:    appVersion,
		DataLoaded: h.deps.Dataset() != nil && h.deps.Dataset().Len() > 0,
	})
}

// HandleMetrics exposes the Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.scraper.ServeHTTP(w, r)
}
