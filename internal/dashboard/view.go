package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cicd-demo/statusboard/internal/models/entities"
)

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).MarginRight(2)
	bannerStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1).MarginBottom(1)
	featureStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).MarginRight(1)

	statusStyles = map[string]lipgloss.Style{
		"healthy": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		"warning": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		"error":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}

	numberPrinter = message.NewPrinter(language.English)
)

// DevOpsFeature is a tile in the dashboard's feature grid.
type DevOpsFeature struct {
	Name        string
	Description string
	Status      string
	Icon        string
}

// DevOpsFeatures is the fixed grid shown under the status cards.
var DevOpsFeatures = []DevOpsFeature{
	{"CI/CD Pipeline", "AWS CodePipeline", "Active", "🔄"},
	{"Blue-Green Deployment", "Zero downtime", "Active", "🔵"},
	{"Container Orchestration", "Amazon ECS", "Active", "🐳"},
	{"Load Balancing", "Application Load Balancer", "Active", "⚖️"},
	{"Auto Scaling", "Dynamic scaling", "Active", "📈"},
	{"Monitoring & Logging", "CloudWatch", "Active", "📊"},
}

// StatusClass maps a reported status to its display class. Unknown values
// display as healthy.
func StatusClass(status string) string {
	s := strings.ToLower(status)
	if _, ok := statusStyles[s]; ok {
		return s
	}
	return "healthy"
}

// FormatCount renders n with thousands separators.
func FormatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// Render draws the dashboard for a snapshot.
func Render(s Snapshot) string {
	if s.Phase() == PhaseLoading {
		return docStyle.Render("⏳ Loading application...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🚀 AWS CI/CD Pipeline Demo"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Full-Stack Application with Enterprise DevOps Practices"))
	b.WriteString("\n\n")

	if s.Phase() == PhaseReadyWithError {
		b.WriteString(renderBanner(s.Error))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(renderHealthCard(s.Health)),
		cardStyle.Render(renderStatsCard(s.Stats)),
	))
	b.WriteString("\n\n")
	b.WriteString(renderFeatures())

	return docStyle.Render(b.String())
}

func renderBanner(msg string) string {
	return bannerStyle.Render(strings.Join([]string{
		"⚠️  Connection Error",
		msg,
		"Make sure the backend server is running",
	}, "\n"))
}

// FormatCheckTime renders a report timestamp as wall-clock time in the
// local zone.
func FormatCheckTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func renderHealthCard(h *entities.HealthReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💗 System Health") + "\n")
	b.WriteString(subtleStyle.Render("Real-time health monitoring") + "\n\n")

	if h == nil {
		b.WriteString("📊 Health data unavailable")
		return b.String()
	}

	status := string(h.Status)
	b.WriteString(row("Status:", statusStyles[StatusClass(status)].Render(strings.ToUpper(status))))
	b.WriteString(row("Version:", h.Version))
	b.WriteString(row("Environment:", h.Environment))
	b.WriteString(row("Memory Used:", fmt.Sprintf("%v MB", h.Memory.Used)))
	b.WriteString(row("Last Check:", FormatCheckTime(h.Timestamp)))
	return strings.TrimSuffix(b.String(), "\n")
}

func renderStatsCard(st *entities.StatsReport) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 API Statistics") + "\n")
	b.WriteString(subtleStyle.Render("Performance metrics") + "\n\n")

	if st == nil {
		b.WriteString("📊 Statistics unavailable")
		return b.String()
	}

	b.WriteString(row("Total Requests:", FormatCount(st.TotalRequests)))
	b.WriteString(row("Uptime:", st.Uptime))
	b.WriteString(row("Memory Usage:", st.MemoryUsage))
	b.WriteString(row("Runtime Version:", st.RuntimeVersion))
	b.WriteString(row("Platform:", st.Platform))
	return strings.TrimSuffix(b.String(), "\n")
}

func renderFeatures() string {
	tiles := make([]string, 0, len(DevOpsFeatures))
	for _, f := range DevOpsFeatures {
		tiles = append(tiles, featureStyle.Render(fmt.Sprintf("%s %s\n%s\n%s", f.Icon, f.Name, subtleStyle.Render(f.Description), f.Status)))
	}

	var rows []string
	for i := 0; i < len(tiles); i += 3 {
		end := min(i+3, len(tiles))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[i:end]...))
	}
	return titleStyle.Render("🛠️  DevOps Features Implemented") + "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...)
}
