package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordNotifier sends notifications to a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Username   string
	Client     *http.Client
}

// NewDiscordNotifier creates a Discord webhook notifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	n := &DiscordNotifier{
		WebhookURL: webhookURL,
		Username:   "doltgo",
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// DiscordOption configures DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithDiscordUsername sets the bot username.
func WithDiscordUsername(username string) DiscordOption {
	return func(n *DiscordNotifier) { n.Username = username }
}

// Notify implements Notifier.
func (n *DiscordNotifier) Notify(ctx context.Context, event Event) error {
	payload := discordPayload{
		Username: n.Username,
		Content:  discordContent(event),
		Embeds: []discordEmbed{
			{
				Title:       string(event.Type),
				Description: event.Message,
				Color:       n.colorForSeverity(event.Severity),
				Timestamp:   event.Timestamp.Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("discord returned %d", resp.StatusCode)
	}

	return nil
}

// discordContent renders the short message line. Release events lead with
// the version so channel subscribers see it without expanding the embed.
func discordContent(event Event) string {
	if event.Type == EventRelease && event.Version != "" {
		return "Version " + event.Version + " released"
	}
	return event.Message
}

func (n *DiscordNotifier) colorForSeverity(severity string) int {
	switch severity {
	case SeverityCritical, SeverityError:
		return 0xe74c3c // red
	case SeverityWarning:
		return 0xf1c40f // yellow
	default:
		return 0x2ecc71 // green
	}
}

// Discord webhook payload types
type discordPayload struct {
	Username string         `json:"username,omitempty"`
	Content  string         `json:"content,omitempty"`
	Embeds   []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}
