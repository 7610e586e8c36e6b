package nav

import (
	"context"
	"testing"

	"navkit/internal/logging"
	"navkit/internal/view"
)

// navMode is a mode that drives the navigator from its own hooks, the way
// application modes do.
type navMode struct {
	name string
	nav  *Navigator
	root view.Kind
}

func (m *navMode) Name() string { return m.name }

func (m *navMode) OnEnter(ctx context.Context) error {
	_, err := m.nav.Push(ctx, m.root, nil)
	return err
}

func (m *navMode) OnExit(ctx context.Context) error {
	return m.nav.ClearViews(ctx, true)
}

func newTestNavigator(t *testing.T) *Navigator {
	t.Helper()
	s, _, _ := newTestStack(t, 10)
	return New(s, NewMachine(logging.Discard()))
}

func TestNavigator_Delegation(t *testing.T) {
	n := newTestNavigator(t)
	ctx := context.Background()

	inst, err := n.Push(ctx, "main", nil)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if n.Top() != inst || n.Depth() != 1 {
		t.Errorf("expected top=pushed depth=1, got depth=%d", n.Depth())
	}

	if _, err := n.Push(ctx, "settings", nil); err != nil {
		t.Fatalf("Push settings: %v", err)
	}
	top, err := n.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if top != inst {
		t.Error("Pop should reveal the root")
	}
}

func TestNavigator_ModesDriveNavigation(t *testing.T) {
	// Modes hold the navigator and push/clear views from their hooks.
	n := newTestNavigator(t)
	ctx := context.Background()

	menu := &navMode{name: "menu", nav: n, root: "main"}
	game := &navMode{name: "game", nav: n, root: "graphics"}
	if err := n.RegisterMode(menu); err != nil {
		t.Fatalf("RegisterMode: %v", err)
	}
	if err := n.RegisterMode(game); err != nil {
		t.Fatalf("RegisterMode: %v", err)
	}

	if err := n.TransitionTo(ctx, "menu"); err != nil {
		t.Fatalf("TransitionTo menu: %v", err)
	}
	if n.Depth() != 1 || n.Top().Kind() != "main" {
		t.Errorf("menu mode should have pushed main, depth=%d", n.Depth())
	}
	if n.CurrentMode() != menu {
		t.Error("current mode should be menu")
	}

	if err := n.TransitionTo(ctx, "game"); err != nil {
		t.Fatalf("TransitionTo game: %v", err)
	}
	if n.Depth() != 1 || n.Top().Kind() != "graphics" {
		t.Errorf("game mode should own the stack, depth=%d top=%v", n.Depth(), n.Top())
	}
}

func TestNavigator_PopToRootAndClear(t *testing.T) {
	n := newTestNavigator(t)
	ctx := context.Background()
	n.Push(ctx, "main", nil)
	n.Push(ctx, "settings", nil)
	n.Push(ctx, "graphics", nil)

	if err := n.PopToRoot(ctx); err != nil {
		t.Fatalf("PopToRoot: %v", err)
	}
	if n.Depth() != 1 {
		t.Errorf("expected depth 1 after PopToRoot, got %d", n.Depth())
	}

	if err := n.ClearViews(ctx, true); err != nil {
		t.Fatalf("ClearViews: %v", err)
	}
	if n.Depth() != 0 {
		t.Errorf("expected empty stack, got depth %d", n.Depth())
	}
}
