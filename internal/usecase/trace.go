package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("football-manager/internal/usecase")

// startUsecaseSpan opens a child span only when ctx already carries one, so
// background callers and unit tests stay span-free.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func squadAttrs(squadID, userID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("squad.id", squadID),
		attribute.String("user.id", userID),
	}
}
