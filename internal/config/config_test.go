package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "NODE_ENV", "FRONTEND_URL", "APP_VERSION", "npm_package_version", "SHUTDOWN_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadServer(NewServerViper())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.False(t, cfg.IsProduction())
}

func TestLoadServer_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("FRONTEND_URL", "https://dash.example.com")
	t.Setenv("APP_VERSION", "2.4.1")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadServer(NewServerViper())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://dash.example.com", cfg.FrontendURL)
	assert.Equal(t, "2.4.1", cfg.Version)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadServer_NodeEnvFallback(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "staging")

	cfg, err := LoadServer(NewServerViper())
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestLoadServer_InvalidPort(t *testing.T) {
	v := NewServerViper()
	v.Set("port", 70000)
	_, err := LoadServer(v)
	assert.Error(t, err)
}

func TestLoadDashboard(t *testing.T) {
	v := NewDashboardViper()
	v.Set("api_url", "http://api.internal:8000")
	v.Set("poll_interval", "5s")

	cfg, err := LoadDashboard(v)
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:8000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Listen)
}

func TestLoadDashboard_Invalid(t *testing.T) {
	v := NewDashboardViper()
	v.Set("api_url", "not a url")
	_, err := LoadDashboard(v)
	assert.Error(t, err)

	v = NewDashboardViper()
	v.Set("api_url", "http://localhost:8000")
	v.Set("poll_interval", "0s")
	_, err = LoadDashboard(v)
	assert.Error(t, err)
}
