package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestEventTypes(t *testing.T) {
	// Verify all event types are unique
	types := []EventType{
		EventLoadStarted,
		EventLoadCompleted,
		EventLoadFailed,
		EventSyncStarted,
		EventSyncCompleted,
		EventSyncFailed,
		EventServerStarted,
		EventServerStopped,
		EventRelease,
	}

	seen := make(map[EventType]bool)
	for _, et := range types {
		if seen[et] {
			t.Errorf("duplicate event type: %s", et)
		}
		seen[et] = true
	}
}

func TestReleaseEvent(t *testing.T) {
	event := ReleaseEvent("0.3.1")

	if event.Type != EventRelease {
		t.Errorf("Type = %s, want %s", event.Type, EventRelease)
	}
	if event.Version != "0.3.1" {
		t.Errorf("Version = %q", event.Version)
	}
	if !strings.Contains(event.Message, "0.3.1") {
		t.Errorf("Message = %q, want version in message", event.Message)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestNopNotifier(t *testing.T) {
	n := NopNotifier{}
	if err := n.Notify(context.Background(), Event{Type: EventLoadStarted}); err != nil {
		t.Errorf("Notify: %v", err)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewLogNotifier(logger)
	err := n.Notify(context.Background(), Event{
		Type:     EventLoadCompleted,
		RunID:    "run-1",
		Database: "stats",
		Message:  "loaded 2 tables",
		Severity: SeverityInfo,
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "loaded 2 tables") {
		t.Errorf("log output missing message: %s", out)
	}
	if !strings.Contains(out, "run-1") {
		t.Errorf("log output missing run id: %s", out)
	}
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		severity string
		want     slog.Level
	}{
		{SeverityInfo, slog.LevelInfo},
		{SeverityWarning, slog.LevelWarn},
		{SeverityError, slog.LevelError},
		{SeverityCritical, slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := severityLevel(tt.severity); got != tt.want {
			t.Errorf("severityLevel(%q) = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestWebhookNotifier(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, map[string]string{"X-Token": "abc"})
	event := Event{
		Type:      EventSyncCompleted,
		RunID:     "run-9",
		Database:  "stats",
		Tables:    []string{"players"},
		Message:   "sync done",
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}
	if err := n.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if received.Type != EventSyncCompleted || received.RunID != "run-9" {
		t.Errorf("received = %+v", received)
	}
}

func TestWebhookNotifierServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, nil)
	if err := n.Notify(context.Background(), Event{Type: EventLoadFailed}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestDiscordNotifier(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewDiscordNotifier(server.URL, WithDiscordUsername("release-bot"))
	if err := n.Notify(context.Background(), ReleaseEvent("0.3.1")); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if payload["username"] != "release-bot" {
		t.Errorf("username = %v", payload["username"])
	}
	content, _ := payload["content"].(string)
	if !strings.Contains(content, "0.3.1") {
		t.Errorf("content = %q, want version", content)
	}
}

func TestSlackNotifier(t *testing.T) {
	var payload slackPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewSlackNotifier(server.URL, WithSlackChannel("#data"))
	event := Event{
		Type:      EventLoadFailed,
		RunID:     "run-3",
		Database:  "stats",
		Message:   "import failed",
		Severity:  SeverityError,
		Timestamp: time.Now(),
	}
	if err := n.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if payload.Channel != "#data" {
		t.Errorf("channel = %q", payload.Channel)
	}
	if len(payload.Attachments) != 1 {
		t.Fatalf("attachments = %d", len(payload.Attachments))
	}
	att := payload.Attachments[0]
	if att.Color != "danger" {
		t.Errorf("color = %q, want danger", att.Color)
	}
	if !strings.Contains(att.Footer, "run-3") {
		t.Errorf("footer = %q", att.Footer)
	}
}

type failingNotifier struct{}

func (failingNotifier) Notify(ctx context.Context, event Event) error {
	return errors.New("always fails")
}

type countingNotifier struct {
	count int
}

func (c *countingNotifier) Notify(ctx context.Context, event Event) error {
	c.count++
	return nil
}

func TestMultiNotifier(t *testing.T) {
	counter := &countingNotifier{}
	n := NewMultiNotifier(failingNotifier{}, counter)
	n.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	err := n.Notify(context.Background(), Event{Type: EventLoadStarted})
	if err == nil {
		t.Error("expected last error to surface")
	}
	if counter.count != 1 {
		t.Errorf("second notifier called %d times, want 1", counter.count)
	}
}

func TestNotifierContext(t *testing.T) {
	ctx := context.Background()

	if got := NotifierFromContext(ctx); got != nil {
		t.Errorf("empty context returned %v", got)
	}

	n := NopNotifier{}
	ctx = WithNotifier(ctx, n)
	if got := NotifierFromContext(ctx); got == nil {
		t.Error("notifier not found in context")
	}
}
