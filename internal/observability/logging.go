// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-request correlation id.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// LogDegradedEnrichment records a recoverable enrichment degradation:
// the owning user of a plan could not be resolved and a placeholder was
// substituted. This must never change the outcome of the read, so it is
// logged rather than returned.
func (l *Logger) LogDegradedEnrichment(ctx context.Context, planID, userID string, err error) {
	attrs := []any{
		slog.String("event", "degraded_enrichment"),
		slog.String("plan_id", planID),
		slog.String("user_id", userID),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.WarnContext(ctx, "user enrichment degraded", attrs...)
	EnrichmentDegradations.Inc()
}

// LogSkippedPlan records a plan dropped from a batch read because it
// could not be projected. The batch itself proceeds.
func (l *Logger) LogSkippedPlan(ctx context.Context, planID string, err error) {
	l.WarnContext(ctx, "skipping plan in batch read",
		slog.String("plan_id", planID),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}
