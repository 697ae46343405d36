// Package cmd implements the tokenguard CLI using cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/config"
	"github.com/tokenguard/tokenguard/internal/dependency"
	"github.com/tokenguard/tokenguard/internal/shared/cmdutils"
)

const logo = cmdutils.Logo

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:           "tokenguard",
	Short:         logo + " tokenguard — token risk and holder concentration over MCP",
	Long:          logo + " tokenguard — token risk and holder concentration checks for AI chat clients, served over MCP",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		setupLogging(verbose)
		return config.LoadDotEnv(".env", filepath.Join(config.DataDir(), ".env"))
	},
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = dependency.Version

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default ~/.tokenguard/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(holdersCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
}

// setupLogging sends logs to stderr; stdout carries MCP stdio traffic.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

func newContainer(ctx context.Context) (*dependency.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.API.APIKey == "" {
		slog.Warn("no API key configured", "config", configPath(), "env", config.EnvAPIKey)
	}
	return dependency.New(ctx, cfg)
}
