package notify

import (
	"context"
	"fmt"

	slackgo "github.com/slack-go/slack"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// SlackNotifier posts alerts to one Slack channel.
type SlackNotifier struct {
	channelID string
	client    *slackgo.Client
	tokenSet  bool
}

// NewSlackNotifier creates a SlackNotifier. opts are passed to the Slack client.
func NewSlackNotifier(botToken, channelID string, opts ...slackgo.Option) *SlackNotifier {
	return &SlackNotifier{
		channelID: channelID,
		client:    slackgo.New(botToken, opts...),
		tokenSet:  botToken != "",
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) Notify(ctx context.Context, alert schema.Alert) error {
	if !s.tokenSet || s.channelID == "" {
		return fmt.Errorf("slack: bot token or channel not configured")
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channelID, slackgo.MsgOptionText(alert.Text(), false))
	if err != nil {
		return fmt.Errorf("slack: post: %w", err)
	}
	return nil
}
