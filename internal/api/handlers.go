package api

import (
	"net/http"

	"cicd-demo/statusboard/internal/models/entities"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// GetAPIInfo handles GET /api/v1
//
// @Summary Get API information
// @Tags app
// @Produce json
// @Success 200 {object} entities.APIInfo
// @Router /api/v1 [get]
func (h *Handlers) GetAPIInfo() http.HandlerFunc {
	info := entities.APIInfo{
		Message:   "AWS CI/CD Pipeline API",
		Version:   h.deps.Version,
		Framework: "Go (chi)",
		Endpoints: []string{
			"GET /api/v1 - API information",
			"GET /api/v1/health - Health check",
			"GET /api/v1/stats - API statistics",
			"GET /api/v1/features - Application features",
			"GET /health - Simple health check",
		},
		Documentation: h.deps.DocsPath,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

// GetFeatures handles GET /api/v1/features
//
// @Summary Get application features
// @Tags health
// @Produce json
// @Success 200 {array} entities.Feature
// @Router /api/v1/features [get]
func (h *Handlers) GetFeatures() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.deps.Reporter.Features())
	}
}
