package grid

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/roster"
)

// Manager keeps one grid session per roster
type Manager struct {
	roster *roster.Service
	cfg    model.GridConfig
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[model.RosterCode]*Session
}

// NewManager creates a new session Manager
func NewManager(
	roster *roster.Service,
	cfg model.GridConfig,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		roster:   roster,
		cfg:      cfg,
		clock:    clock,
		random:   random,
		logger:   logger,
		sessions: make(map[model.RosterCode]*Session),
	}
}

// GetOrCreate returns the session for a roster, mounting one if needed
func (m *Manager) GetOrCreate(ctx context.Context, code model.RosterCode) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[code]; ok {
		return session, nil
	}

	session, err := NewSession(ctx, code, m.roster.Store(code), m.cfg, m.clock, m.random, m.logger)
	if err != nil {
		return nil, err
	}
	m.sessions[code] = session

	m.logger.Info("grid session mounted",
		slog.String("roster_code", string(code)),
		slog.Int("active_sessions", len(m.sessions)),
	)
	return session, nil
}

// Get returns a session if one is mounted
func (m *Manager) Get(code model.RosterCode) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[code]
	return session, ok
}

// Remove unmounts and forgets a roster's session
func (m *Manager) Remove(code model.RosterCode) {
	m.mu.Lock()
	session, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if ok {
		session.Close()
		m.logger.Info("grid session unmounted", slog.String("roster_code", string(code)))
	}
}

// Close unmounts every session
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[model.RosterCode]*Session)
	m.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}

// SessionCount returns the number of mounted sessions
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
