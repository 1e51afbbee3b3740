// Package config loads service and dashboard settings from the environment
// (and from command flags bound into the same viper instance).
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Server holds the reporting service settings.
type Server struct {
	Port            int
	Environment     string
	FrontendURL     string
	Version         string
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

func (s Server) IsProduction() bool {
	return s.Environment == EnvProduction
}

func (s Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Dashboard holds the polling client settings.
type Dashboard struct {
	APIURL         string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	Listen         string
}

// NewServerViper returns a viper instance with server defaults and env bindings.
func NewServerViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", 8000)
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)

	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("env", "APP_ENV", "NODE_ENV")
	_ = v.BindEnv("frontend_url", "FRONTEND_URL")
	_ = v.BindEnv("version", "APP_VERSION", "npm_package_version")
	_ = v.BindEnv("shutdown_timeout", "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("rate_limit_rps", "RATE_LIMIT_RPS")
	_ = v.BindEnv("rate_limit_burst", "RATE_LIMIT_BURST")
	return v
}

func LoadServer(v *viper.Viper) (Server, error) {
	cfg := Server{
		Port:            v.GetInt("port"),
		Environment:     v.GetString("env"),
		FrontendURL:     v.GetString("frontend_url"),
		Version:         v.GetString("version"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		RateLimitRPS:    v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:  v.GetInt("rate_limit_burst"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Server{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.RateLimitRPS < 0 {
		return Server{}, fmt.Errorf("invalid rate limit %v", cfg.RateLimitRPS)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return cfg, nil
}

// NewDashboardViper returns a viper instance with dashboard defaults and env bindings.
func NewDashboardViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:8000")
	v.SetDefault("poll_interval", 30*time.Second)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("listen", "")

	_ = v.BindEnv("api_url", "API_URL", "VITE_API_URL")
	_ = v.BindEnv("poll_interval", "POLL_INTERVAL")
	_ = v.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	_ = v.BindEnv("listen", "DASHBOARD_LISTEN")
	return v
}

func LoadDashboard(v *viper.Viper) (Dashboard, error) {
	cfg := Dashboard{
		APIURL:         v.GetString("api_url"),
		PollInterval:   v.GetDuration("poll_interval"),
		RequestTimeout: v.GetDuration("request_timeout"),
		Listen:         v.GetString("listen"),
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Dashboard{}, fmt.Errorf("invalid api url %q", cfg.APIURL)
	}
	if cfg.PollInterval <= 0 {
		return Dashboard{}, fmt.Errorf("poll interval must be positive, got %s", cfg.PollInterval)
	}
	if cfg.RequestTimeout <= 0 {
		return Dashboard{}, fmt.Errorf("request timeout must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}
