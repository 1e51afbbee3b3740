package dashboard

import (
	"sync"
	"time"

	"cicd-demo/statusboard/internal/models/entities"
)

// HealthErrorMessage is shown in the banner when the latest health fetch failed.
const HealthErrorMessage = "Failed to fetch health status - API may be down"

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseReadyWithError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseReadyWithError:
		return "ready_with_error"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the display state, safe to hand to a renderer.
type Snapshot struct {
	Health        *entities.HealthReport `json:"health"`
	Stats         *entities.StatsReport  `json:"stats"`
	Loading       bool                   `json:"loading"`
	Error         string                 `json:"error,omitempty"`
	HealthUpdated time.Time              `json:"healthUpdated,omitzero"`
	StatsUpdated  time.Time              `json:"statsUpdated,omitzero"`
}

func (s Snapshot) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseReadyWithError
	default:
		return PhaseReady
	}
}

// State is the dashboard's display state. Only the poller writes to it.
//
// Health and stats are updated independently. A failed fetch never clears
// data that was already received.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewState() *State {
	return &State{snap: Snapshot{Loading: true}}
}

// ApplyHealth records the outcome of a health fetch. Either outcome ends the
// initial loading phase.
func (s *State) ApplyHealth(h *entities.HealthReport, err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snap.Error = HealthErrorMessage
	} else {
		cp := *h
		s.snap.Health = &cp
		s.snap.HealthUpdated = at
		s.snap.Error = ""
	}
	s.snap.Loading = false
}

// ApplyStats records the outcome of a stats fetch. Failures leave the state
// untouched; they are not surfaced to the user.
func (s *State) ApplyStats(st *entities.StatsReport, err error, at time.Time) {
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.snap.Stats = &cp
	s.snap.StatsUpdated = at
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.snap
	if out.Health != nil {
		h := *out.Health
		out.Health = &h
	}
	if out.Stats != nil {
		st := *out.Stats
		out.Stats = &st
	}
	return out
}
