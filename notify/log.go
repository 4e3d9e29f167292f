package notify

import (
	"context"
	"log/slog"
)

// =============================================================================
// LogNotifier
// =============================================================================

// LogNotifier writes events to a slog logger instead of a webhook. Useful
// for local pipeline runs and tests.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	attrs := []any{"type", event.Type, "run_id", event.RunID}
	if event.Database != "" {
		attrs = append(attrs, "database", event.Database)
	}
	if len(event.Tables) > 0 {
		attrs = append(attrs, "tables", event.Tables)
	}
	if event.Version != "" {
		attrs = append(attrs, "version", event.Version)
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, "metadata", event.Metadata)
	}

	n.Logger.Log(ctx, severityLevel(event.Severity), event.Message, attrs...)
	return nil
}

// severityLevel maps an event severity onto a slog level.
func severityLevel(severity string) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError, SeverityCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
