// Package session manages runtime sessions for spatial displays: their
// lifecycle, the registry that owns them, and how per-eye work is hooked
// into a frame.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// Errors returned by sessions and the manager.
var (
	ErrNotFound          = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid session state transition")
)

// Runtime is the vendor runtime driving one display. It provides tracking
// and the device specification.
type Runtime interface {
	tracking.Source
	display.Spec

	// DeviceID identifies the physical display. A manager never holds two
	// sessions for the same device.
	DeviceID() string
	// Begin starts the runtime and blocks until it is running.
	Begin(ctx context.Context) error
	// End stops the runtime.
	End() error
}

// State is the lifecycle state of a Session.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session is one runtime session.
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	runtime Runtime
	state   State
	info    display.Info
	infoOK  bool
}

func newSession(rt Runtime) *Session {
	return &Session{
		ID:      uuid.New(),
		runtime: rt,
		state:   StateCreated,
		info:    display.DefaultInfo(),
	}
}

// Runtime returns the runtime backing the session.
func (s *Session) Runtime() Runtime {
	return s.runtime
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Info returns the cached device description. Before Start it is the
// reference device. ok is false if any query fell back to defaults.
func (s *Session) Info() (info display.Info, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info, s.infoOK
}

// Start begins the runtime and caches the device description. Starting a
// running session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return nil
	}
	if err := s.runtime.Begin(ctx); err != nil {
		return fmt.Errorf("session %s: begin: %w", s.ID, err)
	}
	s.info, s.infoOK = display.Load(s.runtime)
	s.state = StateRunning
	log.Printf("session %s: running on %s (%.3fm wide, %dx%d)",
		s.ID, s.runtime.DeviceID(), s.info.Geometry.Width, s.info.Screen.Width, s.info.Screen.Height)
	return nil
}

// Stop ends the runtime. Stopping a session that is not running is a
// no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return nil
	}
	s.state = StateStopped
	if err := s.runtime.End(); err != nil {
		return fmt.Errorf("session %s: end: %w", s.ID, err)
	}
	return nil
}

// Restart stops and starts the session again. The session must have been
// started before.
func (s *Session) Restart(ctx context.Context) error {
	if s.State() == StateCreated {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, StateCreated)
	}
	if err := s.Stop(); err != nil {
		return err
	}
	return s.Start(ctx)
}
