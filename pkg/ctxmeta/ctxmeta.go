// Пакет ctxmeta — метаданные запроса, которые едут через context.Context:
// request_id, id проверяемого заказа и trace/span активного спана.
// HTTP-слой, сервисы и логгер зависят от этого пакета, но не друг от друга.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyOrderID   ctxKey = "order_id"
)

// WithRequestID кладёт request_id в контекст (пустой id — контекст без изменений).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOrderID помечает контекст id заказа, над которым идёт работа.
// Неположительный id не сохраняется.
func WithOrderID(ctx context.Context, orderID int64) context.Context {
	if ctx == nil || orderID <= 0 {
		return ctx
	}
	return context.WithValue(ctx, KeyOrderID, orderID)
}

func OrderIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(KeyOrderID).(int64)
	return v, ok && v > 0
}

// TraceIDFromContext — trace id активного спана, если он валиден.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SpanIDFromContext — span id активного спана, если он валиден.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}
