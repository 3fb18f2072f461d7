package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/SscSPs/cowork_membership_app/internal/core/services"

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// StartSpan opens a span for a lifecycle action. Without a registered provider the global
// tracer is a no-op.
func (s *BaseService) StartSpan(ctx context.Context, name string, recordID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attribute.String("record.id", recordID)))
}

// EndSpan records err on the span, if any, and ends it.
func (s *BaseService) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Notify sends a notification and logs, rather than returns, a delivery failure.
func (s *BaseService) Notify(ctx context.Context, notifier gateways.Notifier, templateID, recordID string) {
	if notifier == nil {
		return
	}
	if err := notifier.Send(ctx, templateID, recordID); err != nil {
		s.LogError(ctx, err, "Failed to send notification",
			slog.String("template_id", templateID),
			slog.String("record_id", recordID))
	}
}
