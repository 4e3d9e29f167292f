// Package notify sends pipeline event notifications.
//
// A Notifier receives Events describing load runs, sync runs, sql-server
// lifecycle changes, and releases. Implementations:
//
//   - SlackNotifier: posts to a Slack incoming webhook
//   - DiscordNotifier: posts to a Discord webhook
//   - WebhookNotifier: posts the raw event JSON to any HTTP endpoint
//   - LogNotifier: logs events with slog
//   - MultiNotifier: fans out to several notifiers
//   - NopNotifier: discards everything
package notify
