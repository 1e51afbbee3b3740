package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cicd-demo/statusboard/internal/api"
	"cicd-demo/statusboard/internal/config"
	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/metrics"
	"cicd-demo/statusboard/internal/middleware"
	"cicd-demo/statusboard/internal/stats"
)

const (
	requestTimeout = 10 * time.Second
	docsPath       = "/api/docs"
)

type Deps struct {
	Config   config.Server
	Reporter *stats.Reporter
	Metrics  *metrics.MetricsRegistry
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(deps Deps) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.PeerAddrMiddleware)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.FrontendURL},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(chimw.Timeout(requestTimeout))

	// load balancer liveness, outside the versioned API
	r.Get("/health", api.LivenessHandler)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	apiDeps := &api.Dependencies{
		Reporter: deps.Reporter,
		Version:  deps.Config.Version,
	}
	if !deps.Config.IsProduction() {
		r.Mount(docsPath, api.DocsRouter())
		apiDeps.DocsPath = docsPath
		logging.Info("API documentation enabled", "path", docsPath)
	}

	// rate limiting covers /api/v1 only; liveness must always answer
	var apiMiddleware []func(http.Handler) http.Handler
	if deps.Config.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst, deps.Metrics)
		apiMiddleware = append(apiMiddleware, limiter.Middleware)
		logging.Info("Rate limiting enabled",
			"rps", deps.Config.RateLimitRPS,
			"burst", deps.Config.RateLimitBurst,
		)
	}

	RegisterAPIRoutes(r, api.NewHandlers(apiDeps), deps.Reporter, apiMiddleware...)

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
