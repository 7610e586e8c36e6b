// Package factory turns a (kind, optional model) request into a ready,
// bound view instance. It sits between the navigation stack and the pool:
// acquisition comes from the pool, the model comes from the caller, the
// resolver, or a registered constructor, and binding happens exactly once,
// after the instance is fully acquired.
package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"navkit/internal/pool"
	"navkit/internal/resolve"
	"navkit/internal/view"
)

// ErrNoConstructionPath indicates a model could neither be resolved nor
// built from a registered constructor.
var ErrNoConstructionPath = errors.New("factory: no construction path for model")

// Op names the Create step that failed.
type Op string

const (
	OpLoad    Op = "load"
	OpResolve Op = "resolve"
	OpBind    Op = "bind"
)

// CreateError wraps a failed Create with the step it died in. Cancellation
// is still visible through errors.Is(err, context.Canceled).
type CreateError struct {
	Kind view.Kind
	Op   Op
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("factory: create %q: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// Factory produces and destroys bound view instances.
type Factory struct {
	pool     *pool.Pool
	resolver resolve.Resolver
	log      *slog.Logger
	pooling  bool

	mu           sync.RWMutex
	constructors map[view.Kind]func() view.Model
}

// Option configures a Factory.
type Option func(*Factory)

// WithResolver wires the external model resolver. Without one, Create falls
// straight through to registered constructors.
func WithResolver(r resolve.Resolver) Option {
	return func(f *Factory) { f.resolver = r }
}

// WithoutPooling makes Destroy finalize instances instead of returning them
// to the pool. Acquisition still goes through the pool (it owns templates).
func WithoutPooling() Option {
	return func(f *Factory) { f.pooling = false }
}

// New creates a factory over p. log may be nil.
func New(p *pool.Pool, log *slog.Logger, opts ...Option) *Factory {
	if log == nil {
		log = slog.Default()
	}
	f := &Factory{
		pool:         p,
		log:          log,
		pooling:      true,
		constructors: make(map[view.Kind]func() view.Model),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RegisterConstructor wires the manual construction fallback for kind.
func (f *Factory) RegisterConstructor(kind view.Kind, fn func() view.Model) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[kind] = fn
}

// Create acquires an instance of kind and binds a model to it. When m is
// nil the model is resolved, falling back to a registered constructor if
// resolution fails; if neither path works the instance goes back to the
// pool and Create fails with a resolution error. A returned instance is
// immediately showable.
func (f *Factory) Create(ctx context.Context, kind view.Kind, m view.Model) (view.Instance, error) {
	inst, err := f.pool.Get(ctx, kind)
	if err != nil {
		return nil, &CreateError{Kind: kind, Op: OpLoad, Err: err}
	}

	if m == nil {
		m, err = f.resolveModel(kind)
		if err != nil {
			// The instance was already created; hand it back rather
			// than leaking it.
			f.pool.Return(inst)
			return nil, &CreateError{Kind: kind, Op: OpResolve, Err: err}
		}
	}

	if err := inst.Bind(m); err != nil {
		// A dirty instance out of the pool means something violated the
		// release protocol. Destroy it rather than corrupt shared state.
		f.log.Error("factory: bind failed, destroying instance",
			"kind", kind, "id", inst.ID(), "err", err)
		m.Dispose()
		f.pool.Discard(inst)
		return nil, &CreateError{Kind: kind, Op: OpBind, Err: err}
	}
	return inst, nil
}

func (f *Factory) resolveModel(kind view.Kind) (view.Model, error) {
	if f.resolver != nil {
		m, err := f.resolver.Resolve(kind)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, resolve.ErrModelNotRegistered) {
			return nil, err
		}
		// Not registered is recoverable; try direct construction.
	}
	f.mu.RLock()
	ctor := f.constructors[kind]
	f.mu.RUnlock()
	if ctor == nil {
		return nil, fmt.Errorf("%w: kind %q", ErrNoConstructionPath, kind)
	}
	return ctor(), nil
}

// Destroy runs instance cleanup (unbind and dispose the model, drop
// visibility state) and returns the instance to the pool, or finalizes it
// outright when pooling is disabled.
func (f *Factory) Destroy(inst view.Instance) {
	if inst == nil {
		return
	}
	inst.SetInteractive(false)
	inst.SetVisible(false)
	if m := inst.Unbind(); m != nil {
		m.Dispose()
	}
	if f.pooling {
		f.pool.Return(inst)
		return
	}
	f.pool.Discard(inst)
}
