package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"navkit/internal/loader"
	"navkit/internal/logging"
	"navkit/internal/pool"
	"navkit/internal/resolve"
	"navkit/internal/view"
)

const kindPanel = view.Kind("panel")

type panelModel struct{ disposed int }

func (m *panelModel) Dispose() { m.disposed++ }

type panelView struct {
	view.Base
	destroyed int
}

func (p *panelView) Destroy() { p.destroyed++ }

func newPanelPool(t *testing.T) *pool.Pool {
	t.Helper()
	reg := loader.NewRegistry()
	reg.Add(string(kindPanel), func() (view.Template, error) {
		return view.TemplateFunc(kindPanel, func() (view.Instance, error) {
			return &panelView{Base: view.NewBase(kindPanel)}, nil
		}), nil
	})
	p := pool.New(reg, logging.Discard())
	require.NoError(t, pool.Register[*panelView](p, kindPanel, string(kindPanel), 2))
	return p
}

func TestCreate_WithSuppliedModel(t *testing.T) {
	f := New(newPanelPool(t), logging.Discard())
	m := &panelModel{}

	inst, err := f.Create(context.Background(), kindPanel, m)
	require.NoError(t, err)
	require.Equal(t, m, inst.Model(), "supplied model should be bound")
}

func TestCreate_ResolvesModel(t *testing.T) {
	rr := resolve.NewRegistry()
	resolved := &panelModel{}
	rr.Add(kindPanel, func() (view.Model, error) { return resolved, nil })
	f := New(newPanelPool(t), logging.Discard(), WithResolver(rr))

	inst, err := f.Create(context.Background(), kindPanel, nil)
	require.NoError(t, err)
	require.Equal(t, resolved, inst.Model())
}

func TestCreate_ConstructorFallback(t *testing.T) {
	// Resolver has nothing registered: recoverable, the constructor wins.
	f := New(newPanelPool(t), logging.Discard(), WithResolver(resolve.NewRegistry()))
	built := &panelModel{}
	f.RegisterConstructor(kindPanel, func() view.Model { return built })

	inst, err := f.Create(context.Background(), kindPanel, nil)
	require.NoError(t, err)
	require.Equal(t, built, inst.Model())
}

func TestCreate_NoConstructionPath(t *testing.T) {
	p := newPanelPool(t)
	f := New(p, logging.Discard())

	_, err := f.Create(context.Background(), kindPanel, nil)
	require.ErrorIs(t, err, ErrNoConstructionPath)

	var cerr *CreateError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, OpResolve, cerr.Op)

	// The already-created instance must be handed back, not leaked.
	idle, inUse := p.Counts(kindPanel)
	require.Equal(t, 1, idle)
	require.Equal(t, 0, inUse)
}

func TestCreate_ResolverHardFailure(t *testing.T) {
	boom := errors.New("container exploded")
	rr := resolve.NewRegistry()
	rr.Add(kindPanel, func() (view.Model, error) { return nil, boom })
	f := New(newPanelPool(t), logging.Discard(), WithResolver(rr))
	f.RegisterConstructor(kindPanel, func() view.Model { return &panelModel{} })

	// A hard resolver failure is not recoverable; no constructor fallback.
	_, err := f.Create(context.Background(), kindPanel, nil)
	require.ErrorIs(t, err, boom)
}

func TestCreate_UnknownKind(t *testing.T) {
	f := New(newPanelPool(t), logging.Discard())

	_, err := f.Create(context.Background(), "mystery", &panelModel{})
	var cerr *CreateError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, OpLoad, cerr.Op)
	require.ErrorIs(t, err, pool.ErrKindUnknown)
}

func TestCreate_Cancelled(t *testing.T) {
	f := New(newPanelPool(t), logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Create(ctx, kindPanel, &panelModel{})
	require.ErrorIs(t, err, context.Canceled, "cancellation must stay distinguishable")
}

func TestCreate_DirtyInstanceIsDestroyed(t *testing.T) {
	// A template producing pre-bound instances violates the bind-once rule;
	// the factory must destroy rather than pool the dirty instance.
	reg := loader.NewRegistry()
	var made *panelView
	reg.Add(string(kindPanel), func() (view.Template, error) {
		return view.TemplateFunc(kindPanel, func() (view.Instance, error) {
			made = &panelView{Base: view.NewBase(kindPanel)}
			_ = made.Bind(&panelModel{})
			return made, nil
		}), nil
	})
	p := pool.New(reg, logging.Discard())
	require.NoError(t, pool.Register[*panelView](p, kindPanel, string(kindPanel), 2))
	f := New(p, logging.Discard())

	m := &panelModel{}
	_, err := f.Create(context.Background(), kindPanel, m)
	var cerr *CreateError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, OpBind, cerr.Op)
	require.ErrorIs(t, err, view.ErrAlreadyBound)
	require.Equal(t, 1, made.destroyed, "dirty instance must be destroyed")
	require.Equal(t, 1, m.disposed, "unbindable model must be disposed")

	idle, _ := p.Counts(kindPanel)
	require.Equal(t, 0, idle, "dirty instance must not be pooled")
}

func TestDestroy_UnbindsAndPools(t *testing.T) {
	p := newPanelPool(t)
	f := New(p, logging.Discard())
	m := &panelModel{}
	inst, err := f.Create(context.Background(), kindPanel, m)
	require.NoError(t, err)
	inst.SetVisible(true)
	inst.SetInteractive(true)

	f.Destroy(inst)
	require.Equal(t, 1, m.disposed)
	require.Nil(t, inst.Model())
	require.False(t, inst.Visible())
	require.False(t, inst.Interactive())

	idle, inUse := p.Counts(kindPanel)
	require.Equal(t, 1, idle)
	require.Equal(t, 0, inUse)
}

func TestDestroy_WithoutPooling(t *testing.T) {
	p := newPanelPool(t)
	f := New(p, logging.Discard(), WithoutPooling())
	inst, err := f.Create(context.Background(), kindPanel, &panelModel{})
	require.NoError(t, err)

	f.Destroy(inst)
	require.Equal(t, 1, inst.(*panelView).destroyed, "instance must be finalized")
	idle, inUse := p.Counts(kindPanel)
	require.Equal(t, 0, idle, "nothing goes back to the pool")
	require.Equal(t, 0, inUse, "pool must forget the destroyed instance")
}
