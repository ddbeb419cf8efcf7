package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledIsNoop(t *testing.T) {
	require.NoError(t, Init(Config{Enabled: false}))
	assert.False(t, Enabled())

	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	span.End()

	assert.Equal(t, ctx, got)
	_, _, ok := SpanFields(got)
	assert.False(t, ok)
}

func TestStartTickerSpan(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	require.NoError(t, Init(Config{Enabled: true, Exporter: exp, Synchronous: true}))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })
	require.True(t, Enabled())

	ctx, span := StartTickerSpan(context.Background(), "quotes.test.Quote", "TCS")
	traceID, spanID, ok := SpanFields(ctx)
	span.End()

	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "quotes.test.Quote", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.String("ticker", "TCS"))
}

func TestReinitReplacesProvider(t *testing.T) {
	first := tracetest.NewInMemoryExporter()
	second := tracetest.NewInMemoryExporter()

	require.NoError(t, Init(Config{Enabled: true, Exporter: first, Synchronous: true}))
	require.NoError(t, Init(Config{Enabled: true, Exporter: second, Synchronous: true}))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })

	_, span := StartSpan(context.Background(), "after-reinit")
	span.End()

	assert.Empty(t, first.GetSpans())
	assert.Len(t, second.GetSpans(), 1)
}

func TestShutdownDisables(t *testing.T) {
	require.NoError(t, Init(Config{Enabled: true, Exporter: tracetest.NewInMemoryExporter(), Synchronous: true}))
	require.NoError(t, Shutdown(context.Background()))

	assert.False(t, Enabled())
	assert.NoError(t, Shutdown(context.Background()))
}
