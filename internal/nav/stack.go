package nav

import (
	"context"
	"fmt"
	"log/slog"

	"navkit/internal/factory"
	"navkit/internal/transition"
	"navkit/internal/view"
)

// DefaultMaxDepth bounds the stack when no depth is configured.
const DefaultMaxDepth = 10

// StackConfig configures a Stack.
type StackConfig struct {
	// MaxDepth is the hard depth bound; Push beyond it fails.
	MaxDepth int
	// Enter and Exit are the transitions played when a view becomes
	// visible or is hidden. Zero specs complete immediately.
	Enter transition.Spec
	Exit  transition.Spec
}

// Stack is the hierarchical navigation stack. The bottom element is the
// root; Pop never removes it, only PopToRoot/Clear with includeRoot do.
//
// Push policy: pushing never hides the previous top. Views underneath stay
// visible (they just lose interactivity); only Pop and Clear run the
// hide-then-destroy sequence.
type Stack struct {
	factory *factory.Factory
	player  transition.Player
	cfg     StackConfig
	log     *slog.Logger
	items   []view.Instance
}

// NewStack creates a stack over fct and player. log may be nil.
func NewStack(fct *factory.Factory, player transition.Player, cfg StackConfig, log *slog.Logger) *Stack {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if player == nil {
		player = transition.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Stack{factory: fct, player: player, cfg: cfg, log: log}
}

// Depth returns the number of pushed instances.
func (s *Stack) Depth() int { return len(s.items) }

// Top returns the current top instance, or nil when the stack is empty.
func (s *Stack) Top() view.Instance {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Root returns the bottom instance, or nil when the stack is empty.
func (s *Stack) Root() view.Instance {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[0]
}

// Items returns the stacked instances bottom-up, as a copy. Renderers use
// this to composite the visible views in stacking order.
func (s *Stack) Items() []view.Instance {
	out := make([]view.Instance, len(s.items))
	copy(out, s.items)
	return out
}

// Push creates a view of kind, binds m (or a resolved model when m is nil),
// pushes it and runs its show sequence to completion. When Push returns the
// new view is visible, settled and interactive. Cancellation or a failed
// show unwinds completely: no partial push.
func (s *Stack) Push(ctx context.Context, kind view.Kind, m view.Model) (view.Instance, error) {
	if len(s.items) >= s.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d", ErrStackDepthExceeded, s.cfg.MaxDepth)
	}
	inst, err := s.factory.Create(ctx, kind, m)
	if err != nil {
		return nil, err
	}

	prev := s.Top()
	if prev != nil {
		prev.SetInteractive(false)
	}
	s.items = append(s.items, inst)

	if err := s.show(ctx, inst); err != nil {
		s.items = s.items[:len(s.items)-1]
		s.factory.Destroy(inst)
		if prev != nil {
			prev.SetInteractive(true)
		}
		return nil, err
	}
	return inst, nil
}

// Pop removes the top view, hides and destroys it, then re-activates the
// new top. Popping an empty stack is an error; popping when only the root
// remains is a warn-and-ignore no-op that returns the unchanged root.
// Returns the new top.
func (s *Stack) Pop(ctx context.Context) (view.Instance, error) {
	if len(s.items) == 0 {
		return nil, ErrEmptyStack
	}
	if len(s.items) == 1 {
		s.log.Warn("nav: pop ignored, only root remains", "kind", s.items[0].Kind())
		return s.items[0], nil
	}

	top := s.items[len(s.items)-1]
	if err := s.hide(ctx, top); err != nil {
		return nil, err
	}
	s.items = s.items[:len(s.items)-1]
	s.factory.Destroy(top)

	newTop := s.items[len(s.items)-1]
	if err := s.show(ctx, newTop); err != nil {
		return nil, err
	}
	return newTop, nil
}

// PopToRoot removes every non-root view (hide then destroy, top first) and
// re-activates the root. No-op on an empty or root-only stack.
func (s *Stack) PopToRoot(ctx context.Context) error {
	if len(s.items) <= 1 {
		return nil
	}
	for len(s.items) > 1 {
		top := s.items[len(s.items)-1]
		if err := s.hide(ctx, top); err != nil {
			return err
		}
		s.items = s.items[:len(s.items)-1]
		s.factory.Destroy(top)
	}
	return s.show(ctx, s.items[0])
}

// Clear hides and destroys every view from the top down. With includeRoot
// false the root survives and is re-activated; with includeRoot true the
// stack ends up empty.
func (s *Stack) Clear(ctx context.Context, includeRoot bool) error {
	floor := 1
	if includeRoot {
		floor = 0
	}
	for len(s.items) > floor {
		top := s.items[len(s.items)-1]
		if err := s.hide(ctx, top); err != nil {
			return err
		}
		s.items = s.items[:len(s.items)-1]
		s.factory.Destroy(top)
	}
	if !includeRoot && len(s.items) == 1 {
		return s.show(ctx, s.items[0])
	}
	return nil
}

// show runs the activate sequence: make visible, await the enter transition,
// then mark interactive. A view that is already visible (revealed by a pop)
// skips the transition and just regains interactivity.
func (s *Stack) show(ctx context.Context, inst view.Instance) error {
	if !inst.Visible() {
		inst.SetVisible(true)
		if !s.cfg.Enter.Zero() {
			if err := s.player.Play(ctx, s.cfg.Enter, inst); err != nil {
				inst.SetVisible(false)
				return err
			}
		}
	}
	inst.SetInteractive(true)
	return nil
}

// hide runs the deactivate sequence: drop interactivity, await the exit
// transition, then make invisible. A failed or cancelled transition
// restores interactivity so the stack state is unchanged.
func (s *Stack) hide(ctx context.Context, inst view.Instance) error {
	inst.SetInteractive(false)
	if !s.cfg.Exit.Zero() {
		if err := s.player.Play(ctx, s.cfg.Exit, inst); err != nil {
			inst.SetInteractive(true)
			return err
		}
	}
	inst.SetVisible(false)
	return nil
}
