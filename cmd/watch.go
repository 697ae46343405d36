package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/shared/stringutils"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the token watchlist",
}

func init() {
	watchCmd.AddCommand(watchListCmd)
	watchCmd.AddCommand(watchAddCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	watchCmd.AddCommand(watchRunCmd)
}

// ---- list ------------------------------------------------------------------

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched tokens",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		db, err := c.History()
		if err != nil {
			return err
		}
		entries, err := db.ListWatches(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No watched tokens.")
			return nil
		}
		fmt.Printf("%-46s %-20s %-15s\n", "Address", "Label", "Added")
		fmt.Println(strings.Repeat("-", 83))
		for _, e := range entries {
			fmt.Printf("%-46s %-20s %-15s\n", e.Address, stringutils.Truncate(e.Label, 16), humanize.Time(e.AddedAt))
		}
		return nil
	},
}

// ---- add / remove ----------------------------------------------------------

var watchAddLabel string

var watchAddCmd = &cobra.Command{
	Use:   "add <token_address>",
	Short: "Add a token to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		db, err := c.History()
		if err != nil {
			return err
		}
		addr := strings.TrimSpace(args[0])
		if err := db.AddWatch(ctx, addr, watchAddLabel); err != nil {
			return err
		}
		fmt.Printf("✓ Watching %s\n", addr)
		return nil
	},
}

func init() {
	watchAddCmd.Flags().StringVarP(&watchAddLabel, "label", "n", "", "Display label")
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove <token_address>",
	Short: "Remove a token from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()
		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		db, err := c.History()
		if err != nil {
			return err
		}
		removed, err := db.RemoveWatch(ctx, args[0])
		if err != nil {
			return err
		}
		if removed {
			fmt.Printf("✓ Removed %s\n", args[0])
		} else {
			fmt.Printf("Token %s not on the watchlist\n", args[0])
		}
		return nil
	},
}

// ---- run -------------------------------------------------------------------

var watchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Check every watched token once and deliver alerts",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		w := c.Watcher()
		if w == nil {
			return fmt.Errorf("watch needs history: enable history in %s", configPath())
		}
		alerts, err := w.RunOnce(ctx)
		if err != nil {
			return err
		}
		if len(alerts) == 0 {
			fmt.Println("✓ No changes")
			return nil
		}
		for _, a := range alerts {
			fmt.Fprintln(os.Stdout, a.Text())
		}
		return nil
	},
}
