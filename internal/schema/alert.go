package schema

import (
	"strings"
	"time"
)

// Alert is raised by the watcher when a watched token changes for the worse.
type Alert struct {
	Address string
	Label   string
	Reasons []string
	At      time.Time
}

// Text renders the alert as a plain multi-line message.
func (a Alert) Text() string {
	var sb strings.Builder
	title := a.Address
	if a.Label != "" {
		title = a.Label + " (" + a.Address + ")"
	}
	sb.WriteString("🚨 tokenguard alert: " + title + "\n")
	for _, r := range a.Reasons {
		sb.WriteString("- " + r + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
