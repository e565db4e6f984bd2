package postgres

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxTracedQueryLength = 512

var (
	postgresTracer   = otel.Tracer("esports-hub/internal/infrastructure/repository/postgres")
	postgresNoopSpan = trace.SpanFromContext(context.Background())
	queryWhitespace  = regexp.MustCompile(`\s+`)
)

// startQuerySpan only records a span when the caller is already traced.
func startQuerySpan(ctx context.Context, name, resource, query string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, postgresNoopSpan
	}
	return postgresTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.sql.table", documentsTable),
			attribute.String("esports_hub.resource", resource),
			attribute.String("db.statement", formatQueryForTrace(query)),
		),
	)
}

func endQuerySpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespace.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
