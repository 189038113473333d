package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "chatarbor/chat-api"

// GetTracer returns the tracer for the chat service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartTurnSpan starts a span covering one conversational turn.
func StartTurnSpan(ctx context.Context, sessionID, mode string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "chat.turn",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("chat.session_id", sessionID),
			attribute.String("chat.mode", mode),
		),
	)
}

// StartToolSpan starts a span covering one tool invocation.
func StartToolSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "chat.tool_call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("tool.name", name)),
	)
}
