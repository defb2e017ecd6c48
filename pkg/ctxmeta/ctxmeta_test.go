package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/order_rules/pkg/ctxmeta"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestWithRequestID_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	got, ok := ctxmeta.RequestIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "req-123", got)

	// у родителя request_id нет
	_, ok = ctxmeta.RequestIDFromContext(parent)
	require.False(t, ok)
}

func TestWithRequestID_EmptyID_NoChange(t *testing.T) {
	parent := context.Background()
	require.Equal(t, parent, ctxmeta.WithRequestID(parent, ""))
}

func TestWithRequestID_NilCtx(t *testing.T) {
	var nilCtx context.Context
	require.Nil(t, ctxmeta.WithRequestID(nilCtx, "req-1"))

	id, ok := ctxmeta.RequestIDFromContext(nilCtx)
	require.False(t, ok)
	require.Empty(t, id)
}

func TestWithOrderID(t *testing.T) {
	ctx := ctxmeta.WithOrderID(context.Background(), 42)
	id, ok := ctxmeta.OrderIDFromContext(ctx)
	require.True(t, ok)
	require.EqualValues(t, 42, id)

	for _, bad := range []int64{0, -1} {
		_, ok := ctxmeta.OrderIDFromContext(ctxmeta.WithOrderID(context.Background(), bad))
		require.False(t, ok, "id=%d", bad)
	}
}

func TestTraceAndSpanIDs_FromContext(t *testing.T) {
	// Локальный TracerProvider — без глобальной настройки.
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, span.SpanContext().TraceID().String(), traceID)

	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, span.SpanContext().SpanID().String(), spanID)
}

func TestTraceAndSpanIDs_NoSpan(t *testing.T) {
	id, ok := ctxmeta.TraceIDFromContext(context.Background())
	require.False(t, ok)
	require.Empty(t, id)

	id, ok = ctxmeta.SpanIDFromContext(context.Background())
	require.False(t, ok)
	require.Empty(t, id)
}
