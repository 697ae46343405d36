// Package config defines the configuration schema for tokenguard.
//
// Keys use camelCase in both JSON and YAML files.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBaseURL is the Solana Tracker data API.
const DefaultBaseURL = "https://data.solanatracker.io"

// APIConfig configures the outbound token-data API.
type APIConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`
	Timeout int    `json:"timeout" yaml:"timeout"` // seconds
}

func defaultAPIConfig() APIConfig {
	return APIConfig{BaseURL: DefaultBaseURL, Timeout: 15}
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	Name      string `json:"name" yaml:"name"`
	Transport string `json:"transport" yaml:"transport"` // "stdio" | "http"
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:      "tokenguard",
		Transport: "stdio",
		Host:      "127.0.0.1",
		Port:      18791,
	}
}

// CacheConfig configures the response cache. TTL 0 disables it.
type CacheConfig struct {
	TTL  int `json:"ttl" yaml:"ttl"` // seconds
	Size int `json:"size" yaml:"size"`
}

func defaultCacheConfig() CacheConfig {
	return CacheConfig{TTL: 30, Size: 256}
}

// HistoryConfig configures the SQLite snapshot history.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

func defaultHistoryConfig() HistoryConfig {
	return HistoryConfig{Enabled: true, Path: "~/.tokenguard/history.db"}
}

// WatchConfig configures the watchlist re-check.
type WatchConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	Schedule  string  `json:"schedule" yaml:"schedule"`
	RiskDelta float64 `json:"riskDelta" yaml:"riskDelta"`
}

func defaultWatchConfig() WatchConfig {
	return WatchConfig{Schedule: "@every 5m", RiskDelta: 2}
}

// TelegramConfig configures Telegram alert delivery.
type TelegramConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Token   string `json:"token" yaml:"token"`
	ChatID  int64  `json:"chatId" yaml:"chatId"`
}

// SlackConfig configures Slack alert delivery.
type SlackConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	BotToken  string `json:"botToken" yaml:"botToken"`
	ChannelID string `json:"channelId" yaml:"channelId"`
}

// NotifyConfig groups alert sinks. Log delivery is always on.
type NotifyConfig struct {
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
	Slack    SlackConfig    `json:"slack" yaml:"slack"`
}

// Config is the root configuration object.
type Config struct {
	API     APIConfig     `json:"api" yaml:"api"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	History HistoryConfig `json:"history" yaml:"history"`
	Watch   WatchConfig   `json:"watch" yaml:"watch"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		API:     defaultAPIConfig(),
		Server:  defaultServerConfig(),
		Cache:   defaultCacheConfig(),
		History: defaultHistoryConfig(),
		Watch:   defaultWatchConfig(),
	}
}

// HistoryPath returns the expanded absolute path of the history database.
func (c *Config) HistoryPath() string {
	return expandHome(c.History.Path)
}

// APITimeout returns the outbound request timeout.
func (c *Config) APITimeout() time.Duration {
	if c.API.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.API.Timeout) * time.Second
}

// CacheTTL returns the cache entry lifetime; zero disables the cache.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTL) * time.Second
}

func expandHome(path string) string {
	if path == ":memory:" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
