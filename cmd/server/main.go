package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cicd-demo/statusboard/internal/config"
	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/metrics"
	"cicd-demo/statusboard/internal/routes"
	"cicd-demo/statusboard/internal/stats"
)

const (
	serverReadHeaderTimeout = 5 * time.Second
	serverReadTimeout       = 10 * time.Second
	serverWriteTimeout      = 15 * time.Second // > request timeout so the middleware answers first
	serverIdleTimeout       = 60 * time.Second
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve health, statistics and feature reports",
		Long: `Start the reporting API. Settings come from the environment
(PORT, APP_ENV, FRONTEND_URL, APP_VERSION) and may be overridden by flags.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().Int("port", 8000, "Port to listen on")
	cmd.Flags().String("env", config.EnvDevelopment, "Runtime environment label")
	cmd.Flags().String("frontend-url", "http://localhost:3000", "Allowed cross-origin client address")
	cmd.Flags().Float64("rate-limit-rps", 0, "Per-client requests per second (0 disables)")

	for key, flag := range map[string]string{
		"port":           "port",
		"env":            "env",
		"frontend_url":   "frontend-url",
		"rate_limit_rps": "rate-limit-rps",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			log.Fatalf("Failed to bind %s flag: %v", flag, err)
		}
	}
	return cmd
}

func run(ctx context.Context, cfg config.Server) error {
	if err := logging.Init(cfg.Environment); err != nil {
		return err
	}
	defer logging.Close()

	logging.Info("Statusboard starting up",
		"environment", cfg.Environment,
		"version", cfg.Version,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reporter := stats.NewReporter(stats.ReporterConfig{
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, stats.NewCounter())

	router := routes.RegisterRoutes(routes.Deps{
		Config:   cfg,
		Reporter: reporter,
		Metrics:  metrics.NewMetricsRegistry(reg),
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.Info("Server starting",
			"port", cfg.Port,
			"health", fmt.Sprintf("http://localhost:%d/api/v1/health", cfg.Port),
			"stats", fmt.Sprintf("http://localhost:%d/api/v1/stats", cfg.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("Shutdown signal received, shutting down gracefully...",
		"timeout", cfg.ShutdownTimeout.String(),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logging.Info("Server stopped")
	return nil
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.NewServerViper()).ExecuteContext(ctx); err != nil {
		log.Printf("❌ %v", err)
		stop()
		os.Exit(1)
	}
	stop()
	os.Exit(0)
}
