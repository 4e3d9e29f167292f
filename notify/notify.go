package notify

import (
	"context"
	"time"
)

// EventType represents the type of data pipeline event.
type EventType string

// Event type constants.
const (
	EventLoadStarted   EventType = "load_started"
	EventLoadCompleted EventType = "load_completed"
	EventLoadFailed    EventType = "load_failed"
	EventSyncStarted   EventType = "sync_started"
	EventSyncCompleted EventType = "sync_completed"
	EventSyncFailed    EventType = "sync_failed"
	EventServerStarted EventType = "server_started"
	EventServerStopped EventType = "server_stopped"
	EventRelease       EventType = "release"
)

// Severity constants for notifications.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Event describes a pipeline event for notification.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id,omitempty"`
	Database  string         `json:"database,omitempty"`
	Tables    []string       `json:"tables,omitempty"`
	Version   string         `json:"version,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ReleaseEvent builds the event announcing a released version.
func ReleaseEvent(version string) Event {
	return Event{
		Type:      EventRelease,
		Version:   version,
		Message:   "Released version " + version,
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}
}

// Notifier sends notifications about pipeline events.
type Notifier interface {
	// Notify sends a notification. Implementations should be non-blocking
	// and handle errors gracefully (log, don't crash).
	Notify(ctx context.Context, event Event) error
}

type serviceContextKey string

const notifierServiceKey serviceContextKey = "doltgo.notifier"

// WithNotifier adds a Notifier to the context.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierServiceKey, n)
}

// NotifierFromContext extracts the Notifier from context.
// Returns nil if no notifier is configured.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierServiceKey).(Notifier); ok {
		return n
	}
	return nil
}
