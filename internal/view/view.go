package view

import (
	"errors"

	"github.com/google/uuid"
)

// Kind identifies a concrete view type. Kinds are registered with the pool
// before first use; the registry is the closed set of view variants.
type Kind string

// Model is the business-logic object bound to an Instance while it is shown.
// Dispose releases whatever the model holds; it is called exactly once, when
// the owning instance is destroyed or cleaned up for pooling.
type Model interface {
	Dispose()
}

// Instance is the lifecycle contract for a live view. An Instance is owned
// exclusively by one container at a time: the navigation stack while pushed,
// the pool while idle, or transiently the factory during construction.
type Instance interface {
	// ID is a unique identity for this instance, stable across pooling.
	ID() string
	Kind() Kind

	Visible() bool
	SetVisible(bool)
	Interactive() bool
	SetInteractive(bool)

	// Bind attaches a model. Binding an already-bound instance is an error;
	// the caller decides how to report the defect.
	Bind(Model) error
	// Unbind detaches and returns the bound model, or nil if unbound.
	Unbind() Model
	Model() Model
}

// Poolable is the optional contract for pool-aware instances. OnAcquired
// runs when an idle instance is handed out again; OnReleased runs before it
// is stored back (or evicted). Views use these to reset visual state.
type Poolable interface {
	OnAcquired()
	OnReleased()
}

// Destroyer is the optional contract for instances holding resources that
// outlive pooling (textures, processes, file handles). The pool invokes it
// on eviction and on Clear; the factory invokes it when pooling is disabled.
type Destroyer interface {
	Destroy()
}

// Template materializes instances of one concrete kind. Templates are
// produced by a loader and cached by the pool, one per kind.
type Template interface {
	Kind() Kind
	New() (Instance, error)
}

// TemplateFunc adapts a constructor function to the Template contract.
func TemplateFunc(kind Kind, fn func() (Instance, error)) Template {
	return funcTemplate{kind: kind, fn: fn}
}

type funcTemplate struct {
	kind Kind
	fn   func() (Instance, error)
}

func (t funcTemplate) Kind() Kind             { return t.kind }
func (t funcTemplate) New() (Instance, error) { return t.fn() }

// Binding errors.
var (
	ErrAlreadyBound = errors.New("view: instance already has a bound model")
	ErrNilModel     = errors.New("view: cannot bind nil model")
)

// Base carries the common instance state. Concrete views embed it and add
// their own rendering; Base supplies identity, visibility and binding.
type Base struct {
	id          string
	kind        Kind
	visible     bool
	interactive bool
	model       Model
}

// NewBase creates the embedded state for a concrete view of the given kind.
func NewBase(kind Kind) Base {
	return Base{id: uuid.NewString(), kind: kind}
}

func (b *Base) ID() string            { return b.id }
func (b *Base) Kind() Kind            { return b.kind }
func (b *Base) Visible() bool         { return b.visible }
func (b *Base) SetVisible(v bool)     { b.visible = v }
func (b *Base) Interactive() bool     { return b.interactive }
func (b *Base) SetInteractive(v bool) { b.interactive = v }

// Bind implements the exactly-once binding rule.
func (b *Base) Bind(m Model) error {
	if m == nil {
		return ErrNilModel
	}
	if b.model != nil {
		return ErrAlreadyBound
	}
	b.model = m
	return nil
}

// Unbind detaches and returns the current model. Safe on an unbound instance.
func (b *Base) Unbind() Model {
	m := b.model
	b.model = nil
	return m
}

func (b *Base) Model() Model { return b.model }
