package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/schema"
	"github.com/tokenguard/tokenguard/internal/shared/cmdutils"
	"github.com/tokenguard/tokenguard/internal/tools"
)

var riskCmd = &cobra.Command{
	Use:   "risk [token_address...]",
	Short: "Show price, liquidity and risk factors of tokens",
	Long:  "Show price, liquidity and risk factors of tokens. With no arguments, addresses are read from stdin one per line.",
	RunE: func(_ *cobra.Command, args []string) error {
		return runLookup(args, "token risk", tools.ToolTokenRisk)
	},
}

var holdersCmd = &cobra.Command{
	Use:   "holders [token_address...]",
	Short: "Show top holder concentration of tokens",
	Long:  "Show the top 10 holders of tokens and flag dangerous concentration. With no arguments, addresses are read from stdin one per line.",
	RunE: func(_ *cobra.Command, args []string) error {
		return runLookup(args, "holder concentration", tools.ToolHolderConcentration)
	},
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// runLookup executes the named tool exactly as an MCP client would, so
// addresses get the same trimming and validation.
func runLookup(args []string, title string, name tools.ToolName) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	tool := c.Registry().GetTool(name)
	if tool == nil {
		return fmt.Errorf("tool %s not registered", name)
	}
	render := func(addr string) string { return lookupText(ctx, tool, addr) }

	if len(args) > 0 {
		for _, addr := range args {
			cmdutils.PrintReport(os.Stdout, title, render(addr))
		}
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s Enter token addresses (type 'exit' or Ctrl+C to quit)\n", logo)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			return nil
		}
		cmdutils.PrintReport(os.Stdout, title, render(line))
		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}

func lookupText(ctx context.Context, tool schema.Tool, addr string) string {
	out, err := tool.Execute(ctx, map[string]any{"token_address": addr})
	if err != nil {
		return adapter.ErrorText(err)
	}
	return out
}
