package pool

import (
	"context"
	"fmt"
	"sync"

	"navkit/internal/loader"
	"navkit/internal/view"
)

// typedEntry is the generic per-kind pool behind the erased entry interface.
// T is the concrete instance type, so the idle collection and the in-use set
// stay fully typed; only the entry boundary deals in view.Instance.
type typedEntry[T view.Instance] struct {
	kind    view.Kind
	key     string
	maxIdle int
	ld      loader.Loader
	stats   *Stats

	// tmplMu serializes the one-time template load; first caller pays it.
	tmplMu sync.Mutex
	tmpl   view.Template

	mu    sync.Mutex
	idle  []T
	inUse map[string]T
}

func (e *typedEntry[T]) template(ctx context.Context) (view.Template, error) {
	e.tmplMu.Lock()
	defer e.tmplMu.Unlock()
	if e.tmpl != nil {
		return e.tmpl, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tmpl, err := e.ld.LoadTemplate(ctx, e.key)
	if err != nil {
		return nil, err
	}
	e.tmpl = tmpl
	return tmpl, nil
}

func (e *typedEntry[T]) get(ctx context.Context) (view.Instance, error) {
	e.mu.Lock()
	if n := len(e.idle); n > 0 {
		inst := e.idle[n-1]
		e.idle = e.idle[:n-1]
		e.inUse[inst.ID()] = inst
		e.mu.Unlock()
		if p, ok := any(inst).(view.Poolable); ok {
			p.OnAcquired()
		}
		return inst, nil
	}
	e.mu.Unlock()

	tmpl, err := e.template(ctx)
	if err != nil {
		return nil, err
	}
	// Last cancellation check before construction; past this point the
	// instance exists and must be handed to the caller, never dropped.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := tmpl.New()
	if err != nil {
		return nil, err
	}
	inst, ok := raw.(T)
	if !ok {
		return nil, fmt.Errorf("%w: template for %q produced %T", errWrongType, e.kind, raw)
	}
	e.stats.Created.Inc()

	e.mu.Lock()
	e.inUse[inst.ID()] = inst
	e.mu.Unlock()
	if p, ok := any(inst).(view.Poolable); ok {
		p.OnAcquired()
	}
	return inst, nil
}

func (e *typedEntry[T]) put(raw view.Instance) error {
	inst, ok := raw.(T)
	if !ok {
		return fmt.Errorf("%w: got %T for kind %q", errWrongType, raw, e.kind)
	}

	e.mu.Lock()
	if _, held := e.inUse[inst.ID()]; !held {
		// Either a double release (the pool already holds it idle) or an
		// instance this entry never handed out. The former must not be
		// destroyed: the idle collection still references it.
		for _, it := range e.idle {
			if it.ID() == inst.ID() {
				e.mu.Unlock()
				return fmt.Errorf("%w: id %s kind %q", errDoubleRelease, inst.ID(), e.kind)
			}
		}
		e.mu.Unlock()
		return fmt.Errorf("%w: id %s kind %q", errForeignInstance, inst.ID(), e.kind)
	}
	delete(e.inUse, inst.ID())
	e.mu.Unlock()

	if p, ok := any(inst).(view.Poolable); ok {
		p.OnReleased()
	}

	e.mu.Lock()
	if len(e.idle) < e.maxIdle {
		e.idle = append(e.idle, inst)
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	e.stats.Evicted.Inc()
	destroy(inst, e.stats)
	return nil
}

func (e *typedEntry[T]) forget(inst view.Instance) {
	e.mu.Lock()
	delete(e.inUse, inst.ID())
	e.mu.Unlock()
}

func (e *typedEntry[T]) clear(ld loader.Loader) {
	e.mu.Lock()
	idle := e.idle
	e.idle = nil
	e.mu.Unlock()
	for _, inst := range idle {
		destroy(inst, e.stats)
	}

	e.tmplMu.Lock()
	if e.tmpl != nil {
		ld.Release(e.tmpl)
		e.tmpl = nil
	}
	e.tmplMu.Unlock()
}

func (e *typedEntry[T]) counts() (idle, inUse int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.idle), len(e.inUse)
}
