// Package tracing provides the shared OTel tracer helper for domain packages.
//
// Without a registered TracerProvider (tests, local runs without OTEL_* set)
// the global no-op provider is used and spans cost nothing.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "atlas"

// Start creates a span as a child of the span in ctx. The caller must end it:
//
//	ctx, span := tracing.Start(ctx, "algorithms.delete",
//	    attribute.String("atlas.algorithm.id", id),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it failed. It returns err unchanged.
func Fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
