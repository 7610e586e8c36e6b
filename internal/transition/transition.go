// Package transition is the narrow boundary to whatever plays show/hide
// animations. The navigation stack awaits a Player opaquely; it never knows
// how a transition renders, only that it completes or is cancelled.
package transition

import (
	"context"
	"sync"
	"time"

	"navkit/internal/view"
)

// Spec names a visual transition and how long it should run.
type Spec struct {
	Name     string
	Duration time.Duration
}

// Zero reports whether the spec describes no transition at all.
func (s Spec) Zero() bool { return s.Name == "" && s.Duration == 0 }

// Player runs a transition against a target instance. Play blocks until the
// transition settles or ctx is cancelled, in which case it returns ctx's
// error.
type Player interface {
	Play(ctx context.Context, spec Spec, target view.Instance) error
}

// Noop completes every transition immediately. Used when transitions are
// disabled by configuration.
type Noop struct{}

func (Noop) Play(ctx context.Context, _ Spec, _ view.Instance) error {
	return ctx.Err()
}

// Timed models a transition by waiting out its duration, honoring
// cancellation. The demo app uses it in place of a real animation engine.
type Timed struct{}

func (Timed) Play(ctx context.Context, spec Spec, _ view.Instance) error {
	if spec.Duration <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(spec.Duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Call records one Play invocation.
type Call struct {
	Spec   Spec
	Target view.Instance
}

// Recorder is a Player that records calls and optionally fails; tests use it
// to observe show/hide ordering and to simulate cancelled animations.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// Err, when non-nil, is returned by every Play after recording.
	Err error
	// FailAt, when > 0, fails only the Nth call (1-based).
	FailAt int
}

func (r *Recorder) Play(ctx context.Context, spec Spec, target view.Instance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.calls = append(r.calls, Call{Spec: spec, Target: target})
	n := len(r.calls)
	r.mu.Unlock()
	if r.Err != nil && (r.FailAt == 0 || r.FailAt == n) {
		return r.Err
	}
	return nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}
