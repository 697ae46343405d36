// Package notify delivers watcher alerts to chat platforms.
package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tokenguard/tokenguard/internal/config"
	"github.com/tokenguard/tokenguard/internal/schema"
)

// Notifier delivers one alert to one destination.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, alert schema.Alert) error
}

// Manager fans an alert out to every enabled notifier.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a Manager with the log notifier and every notifier
// enabled in cfg.
func NewManager(cfg config.NotifyConfig) *Manager {
	ns := []Notifier{LogNotifier{}}

	if cfg.Telegram.Enabled {
		ns = append(ns, NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID))
		slog.Info("notifier enabled", "name", "telegram")
	}
	if cfg.Slack.Enabled {
		ns = append(ns, NewSlackNotifier(cfg.Slack.BotToken, cfg.Slack.ChannelID))
		slog.Info("notifier enabled", "name", "slack")
	}
	return NewManagerWith(ns...)
}

// NewManagerWith creates a Manager with exactly the given notifiers.
func NewManagerWith(ns ...Notifier) *Manager {
	return &Manager{notifiers: ns}
}

// Enabled returns the names of all notifiers.
func (m *Manager) Enabled() []string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return names
}

// Notify delivers alert everywhere. Failures are logged; the first one is returned.
func (m *Manager) Notify(ctx context.Context, alert schema.Alert) error {
	var first error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, alert); err != nil {
			slog.Error("notify: send failed", "notifier", n.Name(), "token", alert.Address, "err", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct{}

func (LogNotifier) Name() string { return "log" }

func (LogNotifier) Notify(_ context.Context, alert schema.Alert) error {
	slog.Warn("alert", "token", alert.Address, "label", alert.Label, "reasons", strings.Join(alert.Reasons, "; "))
	return nil
}

// splitMessage splits content into chunks that fit within maxLen,
// preferring newline breaks, then space breaks, then hard cut.
func splitMessage(content string, maxLen int) []string {
	if len(content) <= maxLen {
		return []string{content}
	}
	var chunks []string
	for len(content) > 0 {
		if len(content) <= maxLen {
			chunks = append(chunks, content)
			break
		}
		cut := content[:maxLen]
		pos := strings.LastIndex(cut, "\n")
		if pos <= 0 {
			pos = strings.LastIndex(cut, " ")
		}
		if pos <= 0 {
			pos = maxLen
		}
		chunks = append(chunks, content[:pos])
		content = strings.TrimLeft(content[pos:], " \t\n")
	}
	return chunks
}
