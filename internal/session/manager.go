package session

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ugaemi/citypursuit/internal/game"
	"github.com/ugaemi/citypursuit/internal/store"
)

// Settings configure the worlds a manager creates.
type Settings struct {
	Layout        *game.Layout // nil generates a layout per session
	Parked        int          // parked vehicles in generated layouts
	Seed          int64
	CapturePolicy game.CapturePolicy
	StrikePolicy  game.StrikePolicy
	DebugControls bool
	TickInterval  time.Duration
}

// DefaultSettings returns settings with the default tick rate and a generated layout.
func DefaultSettings() Settings {
	return Settings{
		Parked:       game.DefaultParked,
		TickInterval: game.TickInterval,
	}
}

// Manager manages all active sessions.
type Manager struct {
	sessions map[string]*Session // code -> session
	settings Settings
	journal  *journaler
	metrics  *instruments
	mu       sync.RWMutex
}

// NewManager creates a new session manager journaling to journal.
func NewManager(settings Settings, journal store.IncidentStore) (*Manager, error) {
	if settings.TickInterval <= 0 {
		settings.TickInterval = game.TickInterval
	}
	if settings.Layout != nil {
		if err := settings.Layout.Validate(); err != nil {
			return nil, err
		}
	}

	metrics, err := newInstruments()
	if err != nil {
		return nil, fmt.Errorf("session metrics: %w", err)
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		settings: settings,
		metrics:  metrics,
	}
	if journal != nil {
		m.journal = newJournaler(journal, journalBuffer)
	}
	return m, nil
}

// CreateSession creates a new session with a fresh world. The session is
// not started.
func (m *Manager) CreateSession() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.sessions))
	for code := range m.sessions {
		existing[code] = true
	}

	code := GenerateCode(existing)
	s := newSession(code, m.newWorld(code), m.settings.TickInterval, m.journal, m.metrics)
	m.sessions[code] = s

	slog.Info("session created", "code", code)
	return s
}

func (m *Manager) newWorld(code string) *game.World {
	seed := SeedFor(code, m.settings.Seed)

	layout := m.settings.Layout
	if layout == nil {
		layout = game.GenerateLayout(rand.New(rand.NewSource(seed)), m.settings.Parked)
	}

	return game.NewWorld(layout, game.Options{
		Seed:          seed,
		CapturePolicy: m.settings.CapturePolicy,
		StrikePolicy:  m.settings.StrikePolicy,
		DebugControls: m.settings.DebugControls,
		TickInterval:  m.settings.TickInterval,
	})
}

// GetSession returns a session by its code.
func (m *Manager) GetSession(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[code]
}

// RemoveSession stops and removes a session by its code.
func (m *Manager) RemoveSession(code string) {
	m.mu.Lock()
	s, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if ok {
		s.Stop()
		slog.Info("session removed", "code", code)
	}
}

// SessionCount returns the number of active sessions.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FindSessionByClientID finds the session a client is attached to.
func (m *Manager) FindSessionByClientID(clientID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.HasClient(clientID) {
			return s
		}
	}
	return nil
}

// StopAll stops every session and flushes the incident journal. Used on
// shutdown; the manager journals nothing afterwards.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
	if m.journal != nil {
		m.journal.close()
	}
	slog.Info("all sessions stopped", "count", len(sessions))
}
