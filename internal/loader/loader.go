// Package loader defines the template-materialization boundary. The pool
// asks a Loader for a template the first time a kind is requested; how the
// template is actually produced (bundled asset, disk, generated) is the
// loader's business.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"navkit/internal/view"
)

// ErrTemplateNotFound indicates no template exists for the requested key.
var ErrTemplateNotFound = errors.New("loader: template not found")

// Loader materializes view templates by key. LoadTemplate must honor
// cancellation; Release gives the loader a chance to free whatever backs
// the template once the pool no longer needs it.
type Loader interface {
	LoadTemplate(ctx context.Context, key string) (view.Template, error)
	Release(view.Template)
}

// Registry is an in-process Loader backed by registered constructor
// functions. Caching of loaded templates is the pool's concern, not ours;
// the registry just constructs on demand.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]func() (view.Template, error)
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]func() (view.Template, error))}
}

// Ensure Registry implements Loader.
var _ Loader = (*Registry)(nil)

// Add registers a template constructor under key, replacing any previous one.
func (r *Registry) Add(key string, fn func() (view.Template, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[key] = fn
}

// AddTemplate registers an already-built template under key.
func (r *Registry) AddTemplate(key string, tmpl view.Template) {
	r.Add(key, func() (view.Template, error) { return tmpl, nil })
}

// LoadTemplate implements Loader.
func (r *Registry) LoadTemplate(ctx context.Context, key string) (view.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	fn, ok := r.funcs[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}
	return fn()
}

// Release implements Loader. Registry templates hold no external resources.
func (r *Registry) Release(view.Template) {}
