package dashboard

import (
	"embed"
	"encoding/json"
	"html/template"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cicd-demo/statusboard/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"statusClass": StatusClass,
	"upper":       strings.ToUpper,
	"count":       FormatCount,
	"checkTime":   FormatCheckTime,
}).ParseFS(templateFS, "templates/dashboard.html"))

// WebHandler serves the dashboard as an HTML page backed by a State.
type WebHandler struct {
	state   *State
	refresh time.Duration
}

// NewWebHandler creates a handler; browsers reload the page every refresh.
func NewWebHandler(state *State, refresh time.Duration) *WebHandler {
	return &WebHandler{state: state, refresh: refresh}
}

// Routes registers the dashboard pages
func (h *WebHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.DashboardHandler)
	r.Get("/snapshot.json", h.SnapshotHandler)
	r.Get("/healthz", h.HealthCheckHandler)
	return r
}

// DashboardHandler renders the last-known state.
func (h *WebHandler) DashboardHandler(w http.ResponseWriter, _ *http.Request) {
	data := map[string]interface{}{
		"Snapshot":       h.state.Snapshot(),
		"Features":       DevOpsFeatures,
		"RefreshSeconds": int(math.Max(1, h.refresh.Seconds())),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logging.Error("Error rendering template", "error", err.Error())
		http.Error(w, "Error rendering template: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *WebHandler) SnapshotHandler(w http.ResponseWriter, _ *http.Request) {
	snap := h.state.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		Snapshot
		Phase string `json:"phase"`
	}{snap, snap.Phase().String()}); err != nil {
		logging.Error("Snapshot encode failed", "error", err.Error())
	}
}

// HealthCheckHandler is a simple health check for the dashboard service
func (h *WebHandler) HealthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}
