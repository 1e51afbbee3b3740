package api

import (
	"net/http"
)

// GetHealth handles GET /api/v1/health
//
// @Summary Get application health status
// @Tags health
// @Produce json
// @Success 200 {object} entities.HealthReport
// @Router /api/v1/health [get]
func (h *Handlers) GetHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.deps.Reporter.Health())
	}
}

// GetStats handles GET /api/v1/stats
//
// @Summary Get application statistics
// @Tags health
// @Produce json
// @Success 200 {object} entities.StatsReport
// @Router /api/v1/stats [get]
func (h *Handlers) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.deps.Reporter.Stats())
	}
}

// LivenessHandler handles GET /health for load balancer checks. It never
// touches application state.
//
// @Summary Simple health check for load balancer
// @Tags Misc
// @Success 200 {string} string "OK"
// @Router /health [get]
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
