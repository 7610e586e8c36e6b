package nav

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"navkit/internal/view"
)

// Navigator is the single entry point composing stack navigation and mode
// transitions. Application code and mode implementations hold a Navigator;
// the stack and machine underneath are not addressed directly. Pure
// delegation otherwise, plus a span around each operation.
type Navigator struct {
	stack  *Stack
	modes  *Machine
	tracer oteltrace.Tracer
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithTracer wires the telemetry tracer; without it spans are no-ops.
func WithTracer(t oteltrace.Tracer) Option {
	return func(n *Navigator) {
		if t != nil {
			n.tracer = t
		}
	}
}

// New composes a navigator over stack and machine.
func New(stack *Stack, modes *Machine, opts ...Option) *Navigator {
	n := &Navigator{
		stack:  stack,
		modes:  modes,
		tracer: noop.NewTracerProvider().Tracer("navkit"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Push delegates to the stack.
func (n *Navigator) Push(ctx context.Context, kind view.Kind, m view.Model) (view.Instance, error) {
	ctx, span := n.tracer.Start(ctx, "nav.push",
		oteltrace.WithAttributes(
			attribute.String("view.kind", string(kind)),
			attribute.Int("stack.depth", n.stack.Depth()),
		))
	defer span.End()
	inst, err := n.stack.Push(ctx, kind, m)
	recordResult(span, err)
	return inst, err
}

// Pop delegates to the stack and returns the new top.
func (n *Navigator) Pop(ctx context.Context) (view.Instance, error) {
	ctx, span := n.tracer.Start(ctx, "nav.pop",
		oteltrace.WithAttributes(attribute.Int("stack.depth", n.stack.Depth())))
	defer span.End()
	inst, err := n.stack.Pop(ctx)
	recordResult(span, err)
	return inst, err
}

// PopToRoot delegates to the stack.
func (n *Navigator) PopToRoot(ctx context.Context) error {
	ctx, span := n.tracer.Start(ctx, "nav.pop_to_root")
	defer span.End()
	err := n.stack.PopToRoot(ctx)
	recordResult(span, err)
	return err
}

// ClearViews delegates to the stack.
func (n *Navigator) ClearViews(ctx context.Context, includeRoot bool) error {
	ctx, span := n.tracer.Start(ctx, "nav.clear",
		oteltrace.WithAttributes(attribute.Bool("include_root", includeRoot)))
	defer span.End()
	err := n.stack.Clear(ctx, includeRoot)
	recordResult(span, err)
	return err
}

// Top returns the current top view, or nil.
func (n *Navigator) Top() view.Instance { return n.stack.Top() }

// Depth returns the current stack depth.
func (n *Navigator) Depth() int { return n.stack.Depth() }

// Views returns the stacked views bottom-up.
func (n *Navigator) Views() []view.Instance { return n.stack.Items() }

// RegisterMode delegates to the machine.
func (n *Navigator) RegisterMode(mode Mode) error { return n.modes.Register(mode) }

// TransitionTo delegates to the machine.
func (n *Navigator) TransitionTo(ctx context.Context, name string) error {
	from := ""
	if cur := n.modes.Current(); cur != nil {
		from = cur.Name()
	}
	ctx, span := n.tracer.Start(ctx, "nav.transition",
		oteltrace.WithAttributes(
			attribute.String("mode.from", from),
			attribute.String("mode.to", name),
		))
	defer span.End()
	err := n.modes.TransitionTo(ctx, name)
	recordResult(span, err)
	return err
}

// CurrentMode returns the machine's current mode, or nil.
func (n *Navigator) CurrentMode() Mode { return n.modes.Current() }

// Update forwards one tick to the current mode.
func (n *Navigator) Update() { n.modes.Update() }

func recordResult(span oteltrace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
