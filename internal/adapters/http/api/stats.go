package api

import (
	"net/http"
)

// StatsHandler exposes a lightweight service statistics endpoint for
// operational checks.
type StatsHandler struct {
	deps Dependencies
}

func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetStats())
}
