package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/mcp"
	"github.com/tokenguard/tokenguard/internal/shared/cmdutils"
)

var (
	callURL     string
	callCommand string
	callArgs    []string
	callList    bool
	callTimeout time.Duration
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [token_address]",
	Short: "Call a tool on a running MCP server",
	Long: "Call a tool on an MCP server over HTTP (--url) or on a stdio subprocess (--command). " +
		"Without either, a tokenguard stdio server is started from this binary.",
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVar(&callURL, "url", "", "Streamable HTTP endpoint, e.g. http://127.0.0.1:18791/mcp")
	callCmd.Flags().StringVar(&callCommand, "command", "", "Command that starts a stdio MCP server")
	callCmd.Flags().StringSliceVar(&callArgs, "arg", nil, "Argument for --command (repeatable)")
	callCmd.Flags().BoolVarP(&callList, "list", "l", false, "List the server's tools and exit")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "Overall timeout")
}

func callConfig() (mcp.ClientConfig, error) {
	cfg := mcp.ClientConfig{URL: callURL, Command: callCommand, Args: callArgs}
	if cfg.URL != "" || cfg.Command != "" {
		return cfg, nil
	}
	self, err := os.Executable()
	if err != nil {
		return cfg, fmt.Errorf("locate tokenguard binary: %w", err)
	}
	cfg.Command = self
	cfg.Args = []string{"serve", "--transport", "stdio"}
	if cfgFile != "" {
		cfg.Args = append(cfg.Args, "--config", cfgFile)
	}
	return cfg, nil
}

func runCall(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	ccfg, err := callConfig()
	if err != nil {
		return err
	}
	client := mcp.NewClient(ccfg)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	if callList || len(args) < 2 {
		remote, err := client.ListTools(ctx)
		if err != nil {
			return fmt.Errorf("list tools: %w", err)
		}
		for _, t := range remote {
			fmt.Printf("%-28s %s\n", t.Name(), t.Description())
		}
		if !callList {
			return errors.New("usage: tokenguard call <tool> <token_address>")
		}
		return nil
	}

	out, err := client.CallTool(ctx, args[0], map[string]any{"token_address": args[1]})
	cmdutils.PrintReport(os.Stdout, args[0], out)
	if err != nil && !errors.Is(err, mcp.ErrToolFailed) {
		return err
	}
	return nil
}
