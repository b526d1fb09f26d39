package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/ruler/runtime/execution"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	if err := Init("ruler", "0.0.1", fname); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, span := StartSpan(context.Background(), "test")
	span.WithAttributes(map[string]string{"k": "v"})
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("no data written to trace file")
	}
}

func TestStateListener(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	ctx, span := provider.Tracer("test").Start(context.Background(), "step")
	eCtx := execution.NewContext(map[string]interface{}{"result": nil}, execution.WithID("c1"), execution.WithStateListeners(StateListener(ctx)))
	eCtx.Set("items", []interface{}{})
	assert.Nil(t, eCtx.Append("items", "a"))
	assert.NotNil(t, eCtx.Append("missing", "a"))
	eCtx.Set("result", true)
	span.End()

	spans := exporter.GetSpans()
	if !assert.Len(t, spans, 1) {
		return
	}
	events := spans[0].Events
	if !assert.Len(t, events, 3) {
		return
	}
	for _, event := range events {
		assert.Equal(t, MutationEvent, event.Name)
	}
	assert.Contains(t, events[0].Attributes, attribute.String("context.id", "c1"))
	assert.Contains(t, events[0].Attributes, attribute.Bool("overwrite", false))
	assert.Contains(t, events[1].Attributes, attribute.Bool("overwrite", true))
	assert.Contains(t, events[1].Attributes, attribute.String("value.type", "[]interface {}"))
	assert.Contains(t, events[2].Attributes, attribute.String("key", "result"))
	assert.Contains(t, events[2].Attributes, attribute.Bool("overwrite", true))
}

func TestStateListener_NoSpan(t *testing.T) {
	eCtx := execution.NewContext(nil, execution.WithStateListeners(StateListener(context.Background())))
	eCtx.Set("k", 1)
	v, err := eCtx.Get("k")
	assert.Nil(t, err)
	assert.Equal(t, 1, v)
}
