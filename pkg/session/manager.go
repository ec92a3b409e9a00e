package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager owns the sessions of a process. Pass it to whatever needs to
// allocate or look up sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	order    []uuid.UUID
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Allocate returns the session for rt's device, creating it if needed.
func (m *Manager) Allocate(rt Runtime) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocateLocked(rt)
}

func (m *Manager) allocateLocked(rt Runtime) *Session {
	for _, id := range m.order {
		if s := m.sessions[id]; s.runtime.DeviceID() == rt.DeviceID() {
			return s
		}
	}
	s := newSession(rt)
	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
	return s
}

// AllocateMulti allocates one session per runtime, in order, for tiled
// multi-display setups.
func (m *Manager) AllocateMulti(rts []Runtime) []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Session, 0, len(rts))
	for _, rt := range rts {
		out = append(out, m.allocateLocked(rt))
	}
	return out
}

// Find looks up a session by id.
func (m *Manager) Find(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Sessions returns the sessions in allocation order.
func (m *Manager) Sessions() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Session, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sessions[id])
	}
	return out
}

// Release stops a session and forgets it.
func (m *Manager) Release(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		for i, o := range m.order {
			if o == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Stop()
}

// CloseAll stops and forgets every session. It returns every stop error.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.order))
	for _, id := range m.order {
		sessions = append(sessions, m.sessions[id])
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.order = nil
	m.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
