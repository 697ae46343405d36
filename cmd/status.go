package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/config"
	"github.com/tokenguard/tokenguard/internal/notify"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tokenguard status",
	RunE:  runStatus,
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := configPath()

	fmt.Printf("%s tokenguard Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	fmt.Printf("Config:    %s %s\n", cfgPath, mark(statErr == nil))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	fmt.Printf("API:       %s\n", cfg.API.BaseURL)
	switch {
	case cfg.API.APIKey != "":
		fmt.Printf("API key:   ✓\n")
	default:
		fmt.Printf("API key:   (not set; use apiKey or %s)\n", config.EnvAPIKey)
	}
	fmt.Printf("Server:    %s (%s, port %d)\n", cfg.Server.Name, cfg.Server.Transport, cfg.Server.Port)
	fmt.Printf("Cache:     ttl %s, %d entries\n", cfg.CacheTTL(), cfg.Cache.Size)

	if cfg.History.Enabled {
		path := cfg.HistoryPath()
		if fi, err := os.Stat(path); err == nil {
			fmt.Printf("History:   %s ✓ (%s)\n", path, humanize.Bytes(uint64(fi.Size())))
		} else {
			fmt.Printf("History:   %s (not created yet)\n", path)
		}
	} else {
		fmt.Println("History:   disabled")
	}
	fmt.Printf("Watch:     %s %s (risk delta %g)\n\n", mark(cfg.Watch.Enabled), cfg.Watch.Schedule, cfg.Watch.RiskDelta)

	fmt.Println("Notifiers:")
	tg := cfg.Notify.Telegram
	fmt.Printf("  %-10s %s", "telegram", mark(tg.Enabled))
	if tg.Enabled && (tg.Token == "" || tg.ChatID == 0) {
		fmt.Print(" (token or chatId missing)")
	}
	fmt.Println()
	sl := cfg.Notify.Slack
	fmt.Printf("  %-10s %s", "slack", mark(sl.Enabled))
	if sl.Enabled && (sl.BotToken == "" || sl.ChannelID == "") {
		fmt.Print(" (botToken or channelId missing)")
	}
	fmt.Println()
	fmt.Printf("  active:    %v\n", notify.NewManager(cfg.Notify).Enabled())
	return nil
}
