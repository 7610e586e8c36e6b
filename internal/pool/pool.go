// Package pool amortizes view instantiation. It keeps a bounded set of idle
// instances per registered kind, loads each kind's template exactly once,
// and evicts beyond capacity.
//
// The pool is type-keyed without reflection: each registered kind gets a
// generic per-type entry hidden behind a small non-generic interface, so the
// pool itself only deals in view.Instance.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"navkit/internal/loader"
	"navkit/internal/view"
)

// Registration and protocol errors.
var (
	ErrKindRegistered  = errors.New("pool: kind already registered")
	ErrKindUnknown     = errors.New("pool: kind not registered")
	errDoubleRelease   = errors.New("pool: instance released twice")
	errForeignInstance = errors.New("pool: instance was never handed out by this pool")
	errWrongType       = errors.New("pool: instance type does not match entry")
)

// warmupParallelism bounds concurrent template instantiation during Warmup.
const warmupParallelism = 4

// entry is the erased per-kind pool. Implemented by the generic typedEntry.
type entry interface {
	get(ctx context.Context) (view.Instance, error)
	put(inst view.Instance) error
	forget(inst view.Instance)
	clear(ld loader.Loader)
	counts() (idle, inUse int)
}

// Pool is the type-keyed instance store. One entry exists per registered
// kind; Register wires new kinds before first use.
type Pool struct {
	mu      sync.Mutex
	entries map[view.Kind]entry
	ld      loader.Loader
	log     *slog.Logger
	stats   Stats
}

// New creates a pool over the given loader. log may be nil.
func New(ld loader.Loader, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	return &Pool{
		entries: make(map[view.Kind]entry),
		ld:      ld,
		log:     log,
	}
}

// Register wires a kind into pool p. T is the concrete instance type the
// kind's template produces; key names the template for the loader; maxIdle
// bounds the idle collection. Registering the same kind twice is an error.
func Register[T view.Instance](p *Pool, kind view.Kind, key string, maxIdle int) error {
	if maxIdle < 0 {
		maxIdle = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.entries[kind]; ok {
		return fmt.Errorf("%w: %q", ErrKindRegistered, kind)
	}
	p.entries[kind] = &typedEntry[T]{
		kind:    kind,
		key:     key,
		maxIdle: maxIdle,
		ld:      p.ld,
		inUse:   make(map[string]T),
		stats:   &p.stats,
	}
	return nil
}

// Registered reports whether kind has a pool entry.
func (p *Pool) Registered(kind view.Kind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.entries[kind]
	return ok
}

func (p *Pool) entry(kind view.Kind) (entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKindUnknown, kind)
	}
	return e, nil
}

// Get hands out an instance of kind: an idle one when available, otherwise a
// new one instantiated from the kind's template. The first Get for a kind
// pays the template load; the template is cached on the entry afterwards.
// Cancellation before construction returns ctx.Err() and creates nothing.
func (p *Pool) Get(ctx context.Context, kind view.Kind) (view.Instance, error) {
	e, err := p.entry(kind)
	if err != nil {
		return nil, err
	}
	return e.get(ctx)
}

// Return gives an instance back to the pool. The on-release callback runs
// first; the instance is then stored if the kind's idle count is below
// capacity, or destroyed (eviction) otherwise.
//
// Protocol defects (unknown kind, double release, type mismatch) are logged
// and the instance destroyed; they never panic into the caller.
func (p *Pool) Return(inst view.Instance) {
	if inst == nil {
		return
	}
	e, err := p.entry(inst.Kind())
	if err != nil {
		p.log.Warn("pool: returned instance has no entry, destroying",
			"kind", inst.Kind(), "id", inst.ID())
		p.stats.Defects.Inc()
		destroy(inst, &p.stats)
		return
	}
	if err := e.put(inst); err != nil {
		p.stats.Defects.Inc()
		if errors.Is(err, errDoubleRelease) {
			// The pool still owns the idle instance; destroying it here
			// would corrupt the idle collection. Log and drop the call.
			p.log.Warn("pool: double release ignored",
				"kind", inst.Kind(), "id", inst.ID())
			return
		}
		p.log.Warn("pool: defective return, destroying",
			"kind", inst.Kind(), "id", inst.ID(), "err", err)
		destroy(inst, &p.stats)
	}
}

// Discard removes inst from the pool's in-use tracking and destroys it,
// bypassing the idle collection. The factory uses it when pooling is
// disabled and for instances that must not be reused.
func (p *Pool) Discard(inst view.Instance) {
	if inst == nil {
		return
	}
	if e, err := p.entry(inst.Kind()); err == nil {
		e.forget(inst)
	}
	destroy(inst, &p.stats)
}

// Warmup pre-populates up to n idle instances of kind by repeated
// get-and-return, without making any of them visible. Instantiation runs
// concurrently; the call returns once the pool is warm or ctx is cancelled.
func (p *Pool) Warmup(ctx context.Context, kind view.Kind, n int) error {
	if n <= 0 {
		return nil
	}
	e, err := p.entry(kind)
	if err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmupParallelism)
	insts := make(chan view.Instance, n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			inst, err := e.get(ctx)
			if err != nil {
				return err
			}
			insts <- inst
			return nil
		})
	}
	err = g.Wait()
	close(insts)
	for inst := range insts {
		p.Return(inst)
	}
	return err
}

// Clear destroys all idle instances across all kinds and releases the cached
// templates back to the loader. Entries stay registered; in-use instances
// are untouched and may still be returned afterwards.
func (p *Pool) Clear() {
	p.mu.Lock()
	entries := make([]entry, 0, len(p.entries))
	for _, e := range p.entries {
		entries = append(entries, e)
	}
	p.mu.Unlock()
	for _, e := range entries {
		e.clear(p.ld)
	}
}

// Counts reports the idle and in-use instance counts for kind.
func (p *Pool) Counts(kind view.Kind) (idle, inUse int) {
	e, err := p.entry(kind)
	if err != nil {
		return 0, 0
	}
	return e.counts()
}

// Stats exposes the pool's lifetime counters.
func (p *Pool) Stats() *Stats { return &p.stats }

// destroy finalizes an instance that is leaving the pool's world entirely.
func destroy(inst view.Instance, stats *Stats) {
	if m := inst.Unbind(); m != nil {
		m.Dispose()
	}
	if d, ok := inst.(view.Destroyer); ok {
		d.Destroy()
	}
	stats.Destroyed.Inc()
}
