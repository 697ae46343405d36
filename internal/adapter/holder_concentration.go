package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// TopHolders is how many of the largest holders are inspected.
const TopHolders = 10

var (
	over90         = decimal.NewFromInt(90)
	over50         = decimal.NewFromInt(50)
	over20         = decimal.NewFromInt(20)
	aggregateLimit = decimal.NewFromInt(15)
)

// AggregateWarning is appended when the top holders exceed the aggregate limit.
const AggregateWarning = "🚨 DANGER: Top 10 holders own more than 15% of supply"

// HolderConcentration fetches the holder list and checks supply concentration.
type HolderConcentration struct {
	src schema.TokenSource
	rec schema.SnapshotRecorder
}

// NewHolderConcentration creates a HolderConcentration. rec may be nil.
func NewHolderConcentration(src schema.TokenSource, rec schema.SnapshotRecorder) *HolderConcentration {
	return &HolderConcentration{src: src, rec: rec}
}

// Analyze issues one request and classifies the top holders.
func (a *HolderConcentration) Analyze(ctx context.Context, address string) (*schema.HolderReport, error) {
	resp, err := a.src.Holders(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetch holders %s: %w", address, err)
	}
	return BuildHolderReport(address, resp.Accounts), nil
}

// Render returns the text report for address, or an "Error: ..." string.
func (a *HolderConcentration) Render(ctx context.Context, address string) string {
	report, err := a.Analyze(ctx, address)
	if err != nil {
		slog.Warn("holders: lookup failed", "token", address, "err", err)
		return ErrorText(err)
	}
	text := FormatHolderReport(report)
	if a.rec != nil {
		if err := a.rec.RecordHolders(ctx, report, text); err != nil {
			slog.Warn("holders: record failed", "token", address, "err", err)
		}
	}
	return text
}

// ClassifyHolder returns the highest single-holder threshold pct exceeds.
func ClassifyHolder(pct decimal.Decimal) schema.HolderFlag {
	switch {
	case pct.GreaterThan(over90):
		return schema.FlagOver90
	case pct.GreaterThan(over50):
		return schema.FlagOver50
	case pct.GreaterThan(over20):
		return schema.FlagOver20
	default:
		return schema.FlagNone
	}
}

// BuildHolderReport sums and classifies the first TopHolders records.
func BuildHolderReport(address string, records []schema.HolderRecord) *schema.HolderReport {
	if len(records) > TopHolders {
		records = records[:TopHolders]
	}
	r := &schema.HolderReport{Address: address, TopTotal: decimal.Zero}
	for i, h := range records {
		r.TopTotal = r.TopTotal.Add(h.Percentage)
		r.Holders = append(r.Holders, schema.RankedHolder{
			Rank:         i + 1,
			HolderRecord: h,
			Flag:         ClassifyHolder(h.Percentage),
		})
	}
	r.Concentrated = ExceedsAggregate(r.TopTotal)
	return r
}

// ExceedsAggregate reports whether a top-holder total is strictly above 15%.
func ExceedsAggregate(total decimal.Decimal) bool {
	return total.GreaterThan(aggregateLimit)
}

func flagText(f schema.HolderFlag) string {
	switch f {
	case schema.FlagOver90:
		return " 🚨 DANGER: holder owns >90% of supply"
	case schema.FlagOver50:
		return " 🚨 DANGER: holder owns >50% of supply"
	case schema.FlagOver20:
		return " ⚠️ DANGER: holder owns >20% of supply"
	}
	return ""
}

// FormatHolderReport renders a report as human-readable lines.
func FormatHolderReport(r *schema.HolderReport) string {
	if len(r.Holders) == 0 {
		return "No holder data available."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Top %d holders own %s%% of supply\n\n", len(r.Holders), r.TopTotal.StringFixed(2))
	for _, h := range r.Holders {
		fmt.Fprintf(&sb, "%d. %s: %s%%%s\n", h.Rank, orDefault(h.Address(), "unknown"), h.Percentage.StringFixed(2), flagText(h.Flag))
	}
	if r.Concentrated {
		sb.WriteString("\n" + AggregateWarning + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
