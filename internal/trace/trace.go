// Package trace owns the process-wide OpenTelemetry tracer provider. The
// logger and the observability wrappers open their spans through it.
package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceName = "indistock"
	serviceVersion     = "1.0.0"
)

// Config selects how spans are exported.
type Config struct {
	Enabled     bool
	ServiceName string
	// Exporter defaults to pretty-printed stdout.
	Exporter sdktrace.SpanExporter
	// Synchronous exports each span as it ends instead of batching.
	Synchronous bool
}

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
)

// Init installs a tracer provider for cfg. A disabled config tears down any
// previous provider and leaves span creation as a no-op.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if provider != nil {
		_ = provider.Shutdown(context.Background())
		provider, tracer = nil, nil
	}
	if !cfg.Enabled {
		return nil
	}

	exporter := cfg.Exporter
	if exporter == nil {
		var err error
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
	}

	name := cfg.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName(name), semconv.ServiceVersion(serviceVersion)))
	if err != nil {
		return err
	}

	export := sdktrace.WithBatcher(exporter)
	if cfg.Synchronous {
		export = sdktrace.WithSyncer(exporter)
	}
	provider = sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(name)
	return nil
}

// Shutdown flushes pending spans and disables tracing.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider, tracer = nil, nil
	return err
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tracer != nil
}

// StartSpan opens a child span of ctx. With tracing off it returns ctx and
// whatever span ctx already carries.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()

	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Start(ctx, spanName, opts...)
}

// StartTickerSpan starts a span tagged with the ticker it works on.
func StartTickerSpan(ctx context.Context, spanName, ticker string) (context.Context, trace.Span) {
	return StartSpan(ctx, spanName, trace.WithAttributes(attribute.String("ticker", ticker)))
}

// SpanFields returns the trace and span IDs carried by ctx, if any.
func SpanFields(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
