// Package telemetry configures OpenTelemetry trace export.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config selects where spans are exported.
type Config struct {
	ServiceName string
	Environment string
	// Endpoint is an OTLP/gRPC collector address. Empty disables export.
	Endpoint string
}

// Provider owns the tracer provider installed by Init.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
}

// Init installs a global tracer provider when an endpoint is configured.
// W3C trace context propagation is always installed so inbound trace headers
// are forwarded to the agent engine.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.Endpoint == "" {
		return &Provider{}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		)),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tracerProvider: tp}, nil
}

// Enabled reports whether spans are being exported.
func (p *Provider) Enabled() bool {
	return p.tracerProvider != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider != nil {
		return p.tracerProvider.Shutdown(ctx)
	}
	return nil
}
