package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName — имя трейсера для спанов приложения.
const TracerName = "github.com/Gunvolt24/order_rules"

// Options — параметры экспорта трейсов.
type Options struct {
	Enabled     bool
	ServiceName string
	Version     string
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // доля корневых трейсов, [0..1]
}

// ShutdownFunc — завершение провайдера с досылкой накопленных спанов.
type ShutdownFunc func(context.Context) error

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// При выключенном трейсинге ставит только пропагаторы: входящий traceparent
// по-прежнему читается, но спаны никуда не уходят.
func SetupTracing(ctx context.Context, opts Options) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	if !opts.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(normalizeEndpoint(opts.Endpoint)),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(opts.SampleRatio)))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.Version),
		)),
	)
	otel.SetTracerProvider(traceProvider)

	return traceProvider.Shutdown, nil
}

// Tracer — трейсер приложения из глобального провайдера.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return "localhost:4318"
	}
	return endpoint
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
