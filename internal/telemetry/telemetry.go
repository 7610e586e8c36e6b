// Package telemetry wires the navigator's operation spans to an OTLP
// endpoint. Export is disabled (noop tracer) unless an endpoint is
// configured, so the coordinator carries no telemetry cost by default.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Telemetry owns the tracer provider. A zero-config Telemetry is valid and
// hands out noop tracers.
type Telemetry struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// Setup builds telemetry for the given endpoint. An empty endpoint falls
// back to OTEL_EXPORTER_OTLP_ENDPOINT; if neither is set, telemetry is
// disabled and Setup never fails.
func Setup(ctx context.Context, endpoint, serviceName string) (*Telemetry, error) {
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" {
		return &Telemetry{tracer: noop.NewTracerProvider().Tracer("navkit")}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	if serviceName == "" {
		serviceName = "navkit"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Telemetry{
		provider: provider,
		tracer:   provider.Tracer("navkit/nav"),
		enabled:  true,
	}, nil
}

// Tracer returns the tracer for navigator spans.
func (t *Telemetry) Tracer() oteltrace.Tracer { return t.tracer }

// Enabled reports whether spans are actually exported.
func (t *Telemetry) Enabled() bool { return t.enabled }

// Shutdown flushes pending spans. Safe on disabled telemetry.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
