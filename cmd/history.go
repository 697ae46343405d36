package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tokenguard/tokenguard/internal/shared/cmdutils"
	"github.com/tokenguard/tokenguard/internal/shared/stringutils"
	"github.com/tokenguard/tokenguard/internal/store"
)

var (
	historyLimit int
	historyFull  bool
)

var historyCmd = &cobra.Command{
	Use:   "history <token_address>",
	Short: "Show recorded lookups of a token",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries")
	historyCmd.Flags().BoolVar(&historyFull, "full", false, "Print the full recorded reports")
}

func runHistory(_ *cobra.Command, args []string) error {
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
	snaps, err := db.ListSnapshots(ctx, args[0], historyLimit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Printf("No history for %s\n", stringutils.ShortAddress(args[0]))
		return nil
	}

	if historyFull {
		for _, s := range snaps {
			cmdutils.PrintReport(os.Stdout, fmt.Sprintf("%s %s", s.Kind, s.CreatedAt.Format("2006-01-02 15:04:05")), s.Report)
		}
		return nil
	}

	fmt.Printf("%-8s %-16s %-8s %-7s %-10s %s\n", "Kind", "When", "Risk", "Rugged", "Top 10 %", "Summary")
	fmt.Println(strings.Repeat("-", 90))
	for _, s := range snaps {
		fmt.Printf("%-8s %-16s %-8s %-7s %-10s %s\n",
			s.Kind,
			humanize.Time(s.CreatedAt),
			nullString(s.RiskScore.Valid, s.RiskScore.Decimal.String()),
			ruggedMark(s),
			nullString(s.TopTotal.Valid, s.TopTotal.Decimal.StringFixed(2)),
			stringutils.Truncate(stringutils.FirstLine(s.Report), 40),
		)
	}
	return nil
}

func nullString(valid bool, s string) string {
	if !valid {
		return "-"
	}
	return s
}

func ruggedMark(s store.Snapshot) string {
	if s.Kind != store.KindRisk {
		return "-"
	}
	if s.Rugged {
		return "yes"
	}
	return "no"
}
