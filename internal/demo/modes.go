package demo

import (
	"context"

	"go.uber.org/atomic"

	"navkit/internal/nav"
)

// Mode names used by the demo.
const (
	ModeMenu    = "menu"
	ModeSession = "session"
)

// MenuMode is the browsing mode: its root view is the menu, and everything
// the user pushes on top of it (settings, popups) belongs to it. Leaving
// the mode clears the whole stack.
type MenuMode struct {
	nav *nav.Navigator
}

var _ nav.Mode = (*MenuMode)(nil)

// NewMenuMode creates the menu mode over n.
func NewMenuMode(n *nav.Navigator) *MenuMode {
	return &MenuMode{nav: n}
}

func (m *MenuMode) Name() string { return ModeMenu }

func (m *MenuMode) OnEnter(ctx context.Context) error {
	_, err := m.nav.Push(ctx, KindMenu, nil)
	return err
}

func (m *MenuMode) OnExit(ctx context.Context) error {
	return m.nav.ClearViews(ctx, true)
}

// SessionMode runs a pty shell as its root view and counts frames while
// current.
type SessionMode struct {
	nav    *nav.Navigator
	frames atomic.Int64
}

var (
	_ nav.Mode   = (*SessionMode)(nil)
	_ nav.Ticker = (*SessionMode)(nil)
)

// NewSessionMode creates the shell session mode over n.
func NewSessionMode(n *nav.Navigator) *SessionMode {
	return &SessionMode{nav: n}
}

func (m *SessionMode) Name() string { return ModeSession }

func (m *SessionMode) OnEnter(ctx context.Context) error {
	_, err := m.nav.Push(ctx, KindShell, nil)
	return err
}

func (m *SessionMode) OnExit(ctx context.Context) error {
	return m.nav.ClearViews(ctx, true)
}

func (m *SessionMode) OnTick() {
	m.frames.Inc()
}

// Frames reports how many ticks the mode has seen since creation.
func (m *SessionMode) Frames() int64 {
	return m.frames.Load()
}
