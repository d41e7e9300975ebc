package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("football-manager/internal/interfaces/httpapi")

// startHandlerSpan opens httpapi.Handler.<op> as a child of the request span.
// Requests without a recording parent, such as /healthz, get a no-op span.
func startHandlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	if op == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return apiTracer.Start(ctx, handlerSpanName(op),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("http.route", r.Pattern)),
	)
}

func handlerSpanName(op string) string {
	return handlerSpanPrefix + op
}
