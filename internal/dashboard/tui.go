package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SnapshotMsg delivers a fresh snapshot to the terminal UI.
type SnapshotMsg Snapshot

// Model is the bubbletea model for the terminal dashboard. It only renders;
// polling happens in the Poller.
type Model struct {
	snap     Snapshot
	apiURL   string
	Quitting bool
}

func NewModel(initial Snapshot, apiURL string) *Model {
	return &Model{snap: initial, apiURL: apiURL}
}

func (*Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Quitting = true
			return m, tea.Quit
		}
	case SnapshotMsg:
		m.snap = Snapshot(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Quitting {
		return ""
	}
	return Render(m.snap) + "\n" + subtleStyle.Render("  Polling "+m.apiURL+" · press 'q' to quit") + "\n"
}

// Snapshot returns the snapshot currently on screen.
func (m *Model) Snapshot() Snapshot {
	return m.snap
}
