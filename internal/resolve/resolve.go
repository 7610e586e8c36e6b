// Package resolve defines the view-model resolution boundary. The factory
// consults a Resolver when a caller pushes a view without supplying a model;
// resolution failure is recoverable (the factory falls back to direct
// construction).
package resolve

import (
	"errors"
	"fmt"
	"sync"

	"navkit/internal/view"
)

// ErrModelNotRegistered indicates no provider exists for the requested kind.
var ErrModelNotRegistered = errors.New("resolve: no model provider registered")

// Resolver produces a fresh view-model for a kind.
type Resolver interface {
	Resolve(kind view.Kind) (view.Model, error)
}

// Registry is an in-process Resolver mapping kinds to provider functions.
type Registry struct {
	mu        sync.RWMutex
	providers map[view.Kind]func() (view.Model, error)
}

// NewRegistry creates an empty resolver registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[view.Kind]func() (view.Model, error))}
}

// Ensure Registry implements Resolver.
var _ Resolver = (*Registry)(nil)

// Add registers a provider for kind, replacing any previous one.
func (r *Registry) Add(kind view.Kind, fn func() (view.Model, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[kind] = fn
}

// Resolve implements Resolver.
func (r *Registry) Resolve(kind view.Kind) (view.Model, error) {
	r.mu.RLock()
	fn, ok := r.providers[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrModelNotRegistered, kind)
	}
	return fn()
}
