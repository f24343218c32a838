package otelx

import (
	"context"
	"testing"
)

func TestConfigFromEnv_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	cfg, err := ConfigFromEnv("facility-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Enabled {
		t.Fatalf("expected tracing disabled without an endpoint")
	}
	shutdown, err := Setup(context.Background(), cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestConfigFromEnv_Sampling(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317")
	t.Setenv("OTEL_SAMPLING_PERCENT", "25")
	cfg, err := ConfigFromEnv("facility-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Enabled || cfg.SampleRatio != 0.25 || cfg.OTLPEndpoint != "jaeger:4317" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("OTEL_SAMPLING_PERCENT", "150")
	if _, err := ConfigFromEnv("facility-service"); err == nil {
		t.Fatalf("expected out-of-range sampling to fail")
	}
}
