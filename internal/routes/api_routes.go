package routes

import (
	"net/http"

	"cicd-demo/statusboard/internal/api"
	"cicd-demo/statusboard/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// Every request under /api/v1 counts towards totalRequests. Extra middleware,
// such as the rate limiter, runs ahead of the counter.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, counter middleware.RequestCounter, extra ...func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(extra...)
		v1.Use(middleware.CountRequests(counter))

		v1.Get("/", handlers.GetAPIInfo())
		v1.Get("/health", handlers.GetHealth())
		v1.Get("/stats", handlers.GetStats())
		v1.Get("/features", handlers.GetFeatures())
	})
}
