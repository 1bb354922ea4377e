// Package tracing installs the process TracerProvider and the echo span middleware.
// Spans are exported over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is set.
package tracing

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/version"
	"github.com/emergent-company/atlas/pkg/logger"
)

var Module = fx.Module("tracing",
	fx.Provide(NewProvider),
	fx.Invoke(registerLifecycle),
	fx.Invoke(RegisterMiddleware),
)

// Provider owns the SDK provider; sdk is nil when export is disabled.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// NewProvider registers the global TracerProvider.
func NewProvider(cfg *config.Config, log *slog.Logger) (*Provider, error) {
	log = log.With(logger.Scope("tracing"))
	oc := cfg.Otel
	if !oc.Enabled() {
		log.Info("tracing disabled")
		otel.SetTracerProvider(noop.NewTracerProvider())
		return &Provider{}, nil
	}

	exp, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpointURL(oc.ExporterEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(
			semconv.ServiceName(oc.ServiceName),
			semconv.ServiceVersion(version.Version),
			attribute.String("deployment.environment", cfg.Environment),
		),
		resource.WithFromEnv(),
	)
	if err != nil {
		log.Warn("resource detection failed", logger.Error(err))
		res = resource.Empty()
	}

	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(oc.SamplingRate))
	if oc.SamplingRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)

	log.Info("tracing enabled",
		slog.String("endpoint", oc.ExporterEndpoint),
		slog.Float64("sampling_rate", oc.SamplingRate),
	)
	return &Provider{sdk: tp}, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

func registerLifecycle(lc fx.Lifecycle, p *Provider) {
	if p.sdk == nil {
		return
	}
	lc.Append(fx.StopHook(p.sdk.Shutdown))
}

// RegisterMiddleware traces every request except health checks and scrapes.
func RegisterMiddleware(e *echo.Echo, cfg *config.Config, p *Provider) {
	if !p.Enabled() {
		return
	}
	e.Use(otelecho.Middleware(cfg.Otel.ServiceName,
		otelecho.WithSkipper(func(c echo.Context) bool {
			return isUntraced(c.Request().URL.Path)
		}),
	))
}

func isUntraced(path string) bool {
	switch path {
	case "/health", "/healthz", "/ready", "/metrics":
		return true
	}
	return false
}
