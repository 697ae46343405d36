package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvAPIKey         = "TOKENGUARD_API_KEY"
	EnvTrackerAPIKey  = "SOLANA_TRACKER_API_KEY"
	EnvBaseURL        = "TOKENGUARD_BASE_URL"
	EnvTelegramToken  = "TOKENGUARD_TELEGRAM_TOKEN"
	EnvTelegramChatID = "TOKENGUARD_TELEGRAM_CHAT_ID"
	EnvSlackToken     = "TOKENGUARD_SLACK_TOKEN"
)

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overlays environment variables on cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvTrackerAPIKey); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Notify.Telegram.Token = v
	}
	if v := os.Getenv(EnvTelegramChatID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Notify.Telegram.ChatID = id
		}
	}
	if v := os.Getenv(EnvSlackToken); v != "" {
		cfg.Notify.Slack.BotToken = v
	}
}
