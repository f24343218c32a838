// Package otelx configures OpenTelemetry tracing from the environment.
package otelx

import (
	"context"
	"fmt"
	"time"

	"github.com/md-rashed-zaman/facilitycal/libs/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // host:port, e.g. jaeger:4317
	SampleRatio    float64
}

// ConfigFromEnv reads OTEL_ENABLED, OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_SAMPLING_PERCENT,
// SERVICE_VERSION and DEPLOY_ENV. An empty endpoint disables export.
func ConfigFromEnv(serviceName string) (Config, error) {
	enabled, err := config.Bool("OTEL_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	percent, err := config.Int("OTEL_SAMPLING_PERCENT", 100)
	if err != nil {
		return Config{}, err
	}
	if percent < 0 || percent > 100 {
		return Config{}, fmt.Errorf("OTEL_SAMPLING_PERCENT must be within 0-100 (got %d)", percent)
	}
	endpoint := config.String("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	return Config{
		Enabled:        enabled && endpoint != "",
		ServiceName:    serviceName,
		ServiceVersion: config.String("SERVICE_VERSION", "dev"),
		Environment:    config.String("DEPLOY_ENV", "local"),
		OTLPEndpoint:   endpoint,
		SampleRatio:    float64(percent) / 100,
	}, nil
}

// Setup installs the W3C propagators and, when enabled, a batching OTLP tracer
// provider. Call the returned func during graceful shutdown.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithTimeout(3*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider. Tracers obtained
// before Setup pick up the provider once it is installed.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
