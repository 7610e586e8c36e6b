package nav

import (
	"errors"
	"fmt"
)

// Capacity and registration errors. All are reported to the immediate
// caller; none of them mutate stack or machine state.
var (
	ErrStackDepthExceeded = errors.New("nav: stack depth exceeded")
	ErrEmptyStack         = errors.New("nav: stack is empty")
	ErrModeRegistered     = errors.New("nav: mode already registered")
	ErrModeUnknown        = errors.New("nav: mode not registered")
)

// TransitionError wraps a failed mode transition with the hook that failed.
// The machine's current-mode pointer is already rolled back by the time the
// caller sees one of these.
type TransitionError struct {
	From string // previous mode, "" when transitioning from no mode
	To   string
	Hook string // "exit" or "enter"
	Err  error
}

func (e *TransitionError) Error() string {
	from := e.From
	if from == "" {
		from = "<none>"
	}
	return fmt.Sprintf("nav: transition %s -> %s: %s hook: %v", from, e.To, e.Hook, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
