package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cicd-demo/statusboard/internal/logging"
	"cicd-demo/statusboard/internal/models/entities"
)

func readySnapshot() Snapshot {
	return Snapshot{
		Health: &entities.HealthReport{
			Status:      entities.HealthStatusHealthy,
			Version:     "1.0.0",
			Environment: "development",
			Memory:      entities.MemoryUsage{Used: 12.5, Total: 32},
			Timestamp:   time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC),
		},
		Stats: &entities.StatsReport{
			TotalRequests:  1234567,
			Uptime:         "1h 2m 3s",
			MemoryUsage:    "12.5 MB",
			RuntimeVersion: "go1.24.0",
			Platform:       "linux",
		},
	}
}

func TestRender_LoadingIsExclusive(t *testing.T) {
	out := Render(Snapshot{Loading: true})
	assert.Contains(t, out, "Loading application...")
	assert.NotContains(t, out, "System Health")
	assert.NotContains(t, out, "Connection Error")
}

func TestRender_Ready(t *testing.T) {
	out := Render(readySnapshot())
	assert.Contains(t, out, "HEALTHY")
	assert.Contains(t, out, "12.5 MB")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "1h 2m 3s")
	assert.Contains(t, out, "Blue-Green Deployment")
	assert.NotContains(t, out, "Connection Error")
}

func TestRender_ErrorBannerOverStaleData(t *testing.T) {
	snap := readySnapshot()
	snap.Error = HealthErrorMessage

	out := Render(snap)
	assert.Contains(t, out, "Connection Error")
	assert.Contains(t, out, HealthErrorMessage)
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "HEALTHY")
}

func TestRender_Placeholders(t *testing.T) {
	out := Render(Snapshot{Error: HealthErrorMessage})
	assert.Contains(t, out, "Health data unavailable")
	assert.Contains(t, out, "Statistics unavailable")
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "healthy", StatusClass("Healthy"))
	assert.Equal(t, "warning", StatusClass("WARNING"))
	assert.Equal(t, "error", StatusClass("error"))
	assert.Equal(t, "healthy", StatusClass("degraded"))
	assert.Equal(t, "healthy", StatusClass(""))
}

func TestState_Transitions(t *testing.T) {
	s := NewState()
	now := time.Now()
	assert.Equal(t, PhaseLoading, s.Snapshot().Phase())

	// stats alone does not end loading
	s.ApplyStats(&entities.StatsReport{TotalRequests: 1}, nil, now)
	assert.Equal(t, PhaseLoading, s.Snapshot().Phase())

	s.ApplyHealth(nil, errors.New("down"), now)
	assert.Equal(t, PhaseReadyWithError, s.Snapshot().Phase())

	s.ApplyHealth(&entities.HealthReport{Version: "1"}, nil, now)
	assert.Equal(t, PhaseReady, s.Snapshot().Phase())
	assert.Equal(t, now, s.Snapshot().HealthUpdated)

	s.ApplyStats(nil, errors.New("down"), now)
	assert.Equal(t, PhaseReady, s.Snapshot().Phase())
	assert.Equal(t, int64(1), s.Snapshot().Stats.TotalRequests)
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := NewState()
	s.ApplyHealth(&entities.HealthReport{Version: "1"}, nil, time.Now())

	snap := s.Snapshot()
	snap.Health.Version = "mutated"
	assert.Equal(t, "1", s.Snapshot().Health.Version)
}

func TestModel_UpdateAndQuit(t *testing.T) {
	m := NewModel(Snapshot{Loading: true}, "http://localhost:8000")
	assert.Contains(t, m.View(), "Loading application...")

	_, cmd := m.Update(SnapshotMsg(readySnapshot()))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "1,234,567")
	assert.Contains(t, m.View(), "http://localhost:8000")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting)
	assert.Empty(t, m.View())
}

func TestWebHandler_Pages(t *testing.T) {
	state := NewState()
	h := NewWebHandler(state, 30*time.Second).Routes()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Loading application...")
	assert.Contains(t, rr.Body.String(), `content="30"`)

	state.ApplyStats(&entities.StatsReport{TotalRequests: 2500}, nil, time.Now())
	state.ApplyHealth(nil, errors.New("refused"), time.Now())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rr.Body.String()
	assert.Contains(t, body, "Connection Error")
	assert.Contains(t, body, "2,500")
	assert.Contains(t, body, "Health data unavailable")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/snapshot.json", nil))
	var snap map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&snap))
	assert.Equal(t, "ready_with_error", snap["phase"])
	assert.Equal(t, HealthErrorMessage, snap["error"])
	assert.Nil(t, snap["health"])
}

func TestLastCheck_SameLocalTimeInBothViews(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC+5", 5*60*60)
	t.Cleanup(func() { time.Local = orig })

	snap := readySnapshot() // 08:30 UTC
	assert.Equal(t, "13:30:00", FormatCheckTime(snap.Health.Timestamp))
	assert.Contains(t, Render(snap), "13:30:00")

	state := NewState()
	state.ApplyHealth(snap.Health, nil, time.Now())
	rr := httptest.NewRecorder()
	NewWebHandler(state, time.Second).Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "13:30:00")
	assert.NotContains(t, rr.Body.String(), "08:30:00")
}

type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header       { return f.header }
func (f *failingWriter) WriteHeader(int)           {}
func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSnapshotHandler_LogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logging.Set(zap.New(core).Sugar())
	t.Cleanup(func() { logging.Set(nil) })

	h := NewWebHandler(NewState(), time.Second)
	h.SnapshotHandler(&failingWriter{header: http.Header{}}, httptest.NewRequest(http.MethodGet, "/snapshot.json", nil))

	entries := logs.FilterMessage("Snapshot encode failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}
