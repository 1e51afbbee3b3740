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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cicd-demo/statusboard/internal/config"
	"cicd-demo/statusboard/internal/dashboard"
	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/metrics"
)

// Dashboard client
// Polls the reporting API and shows the result either in the terminal or,
// with --listen, as a web page.
func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Poll the reporting API and display health and statistics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDashboard(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("api-url", "http://localhost:8000", "Base URL of the reporting API")
	cmd.Flags().Duration("interval", dashboard.DefaultPollInterval, "Polling interval")
	cmd.Flags().Duration("timeout", dashboard.DefaultFetchTimeout, "Per-request timeout")
	cmd.Flags().String("listen", "", "Serve the dashboard over HTTP on this address instead of the terminal")

	for key, flag := range map[string]string{
		"api_url":         "api-url",
		"poll_interval":   "interval",
		"request_timeout": "timeout",
		"listen":          "listen",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			log.Fatalf("Failed to bind %s flag: %v", flag, err)
		}
	}
	return cmd
}

func run(ctx context.Context, cfg config.Dashboard) error {
	reg := prometheus.NewRegistry()
	state := dashboard.NewState()
	client := dashboard.NewClient(cfg.APIURL, cfg.RequestTimeout)
	opts := []dashboard.PollerOption{
		dashboard.WithInterval(cfg.PollInterval),
		dashboard.WithFetchTimeout(cfg.RequestTimeout),
		dashboard.WithMetrics(metrics.NewMetricsRegistry(reg)),
	}

	if cfg.Listen != "" {
		if err := logging.Init(config.EnvDevelopment); err != nil {
			return err
		}
		defer logging.Close()
		return serveWeb(ctx, cfg, state, dashboard.NewPoller(client, state, opts...), reg)
	}
	return runTerminal(ctx, cfg, state, client, opts)
}

func runTerminal(ctx context.Context, cfg config.Dashboard, state *dashboard.State, client *dashboard.Client, opts []dashboard.PollerOption) error {
	// log lines would tear the terminal UI; keep them in a file
	logFile, err := os.CreateTemp("", "dashboard-*.log")
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()
	logging.SetOutput(logFile)
	defer logging.Close()

	model := dashboard.NewModel(state.Snapshot(), cfg.APIURL)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	poller := dashboard.NewPoller(client, state, append(opts, dashboard.WithOnUpdate(func(s dashboard.Snapshot) {
		program.Send(dashboard.SnapshotMsg(s))
	}))...)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard UI failed: %w", err)
	}
	return nil
}

func serveWeb(ctx context.Context, cfg config.Dashboard, state *dashboard.State, poller *dashboard.Poller, reg *prometheus.Registry) error {
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", dashboard.NewWebHandler(state, cfg.PollInterval).Routes())

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Dashboard UI starting", "listen", cfg.Listen, "api_url", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dashboard server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dashboard shutdown failed: %w", err)
	}
	logging.Info("Dashboard UI stopped")
	return nil
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.NewDashboardViper()).ExecuteContext(ctx); err != nil {
		log.Printf("❌ %v", err)
		stop()
		os.Exit(1)
	}
}
