package nav

import (
	"context"
	"fmt"
	"log/slog"
)

// Mode is a named, mutually-exclusive application-wide behavior unit.
// Implementations live in application code; modes may hold the Navigator
// and push or pop views from their hooks.
type Mode interface {
	Name() string
	// OnEnter runs when the mode becomes current. It should honor ctx.
	OnEnter(ctx context.Context) error
	// OnExit runs before the mode stops being current.
	OnExit(ctx context.Context) error
}

// Ticker is the optional per-frame hook for modes that need one.
type Ticker interface {
	OnTick()
}

// Machine owns the mode set and the current-mode pointer. Exactly one mode
// is current at a time, or none before the first transition.
type Machine struct {
	modes   map[string]Mode
	current Mode
	log     *slog.Logger
}

// NewMachine creates an empty machine. log may be nil.
func NewMachine(log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	return &Machine{modes: make(map[string]Mode), log: log}
}

// Register adds a mode. Mode identity is its name and is immutable once
// registered; re-registering a name is an error.
func (m *Machine) Register(mode Mode) error {
	if _, ok := m.modes[mode.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrModeRegistered, mode.Name())
	}
	m.modes[mode.Name()] = mode
	return nil
}

// Current returns the current mode, or nil before the first transition.
func (m *Machine) Current() Mode { return m.current }

// TransitionTo switches to the named mode: exit the current mode, swap the
// pointer, enter the target. Transitioning to the current mode is a no-op
// and invokes no hooks. Any failure or cancellation restores the previous
// current-mode pointer before propagating; a mode whose hook failed is left
// exited and the error is surfaced, never swallowed.
func (m *Machine) TransitionTo(ctx context.Context, name string) error {
	next, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrModeUnknown, name)
	}
	if m.current == next {
		return nil
	}

	prev := m.current
	prevName := ""
	if prev != nil {
		prevName = prev.Name()
		if err := prev.OnExit(ctx); err != nil {
			return &TransitionError{From: prevName, To: name, Hook: "exit", Err: err}
		}
	}
	// The exit has happened but the pointer has not moved yet; bail here on
	// cancellation and the rollback contract still holds.
	if err := ctx.Err(); err != nil {
		return err
	}

	m.current = next
	if err := next.OnEnter(ctx); err != nil {
		m.current = prev
		return &TransitionError{From: prevName, To: name, Hook: "enter", Err: err}
	}
	return nil
}

// Update forwards one tick to the current mode. No-op when no mode is
// current or the mode has no tick hook.
func (m *Machine) Update() {
	if t, ok := m.current.(Ticker); ok {
		t.OnTick()
	}
}
