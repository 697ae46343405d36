package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tokenguard/tokenguard/internal/schema"
)

const telegramMaxLen = 4096

// TelegramNotifier sends alerts to one Telegram chat.
type TelegramNotifier struct {
	token    string
	chatID   int64
	endpoint string

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a TelegramNotifier. The bot connects lazily on
// the first alert.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{token: token, chatID: chatID, endpoint: tgbotapi.APIEndpoint}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

func (t *TelegramNotifier) connect() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	if t.token == "" {
		return nil, fmt.Errorf("telegram: bot token not configured")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(t.token, t.endpoint, &http.Client{})
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	t.bot = bot
	return bot, nil
}

func (t *TelegramNotifier) Notify(_ context.Context, alert schema.Alert) error {
	if t.chatID == 0 {
		return fmt.Errorf("telegram: chat id not configured")
	}
	bot, err := t.connect()
	if err != nil {
		return err
	}
	for _, chunk := range splitMessage(alert.Text(), telegramMaxLen) {
		if _, err := bot.Send(tgbotapi.NewMessage(t.chatID, chunk)); err != nil {
			return fmt.Errorf("telegram: send: %w", err)
		}
	}
	return nil
}
