package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tokenguard/tokenguard/internal/schema"
)

// RuggedWarning is appended to the report of a rugged token.
const RuggedWarning = "⚠️ WARNING: This token has been rugged (liquidity removed by its creator)!"

// TokenRisk fetches a token and renders its price, liquidity and risk factors.
type TokenRisk struct {
	src schema.TokenSource
	rec schema.SnapshotRecorder
}

// NewTokenRisk creates a TokenRisk. rec may be nil.
func NewTokenRisk(src schema.TokenSource, rec schema.SnapshotRecorder) *TokenRisk {
	return &TokenRisk{src: src, rec: rec}
}

// Snapshot issues one request and flattens the response.
func (a *TokenRisk) Snapshot(ctx context.Context, address string) (*schema.TokenSnapshot, error) {
	resp, err := a.src.Token(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetch token %s: %w", address, err)
	}
	return resp.Snapshot(address), nil
}

// Render returns the text report for address, or an "Error: ..." string.
func (a *TokenRisk) Render(ctx context.Context, address string) string {
	snap, err := a.Snapshot(ctx, address)
	if err != nil {
		slog.Warn("token risk: lookup failed", "token", address, "err", err)
		return ErrorText(err)
	}
	text := FormatTokenRisk(snap)
	if a.rec != nil {
		if err := a.rec.RecordToken(ctx, snap, text); err != nil {
			slog.Warn("token risk: record failed", "token", address, "err", err)
		}
	}
	return text
}

// FormatTokenRisk renders a snapshot as human-readable lines.
func FormatTokenRisk(s *schema.TokenSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Token: %s (%s)\n", orDefault(s.Name, "Unknown"), orDefault(s.Symbol, "?"))
	fmt.Fprintf(&sb, "Price: %s\n", exactUSD(s.Price))
	fmt.Fprintf(&sb, "Liquidity: %s\n", groupedUSD(s.Liquidity))
	fmt.Fprintf(&sb, "Market Cap: %s\n", groupedUSD(s.MarketCap))
	if s.RiskScore.Valid {
		fmt.Fprintf(&sb, "Risk Score: %s/10\n", s.RiskScore.Decimal.String())
	} else {
		fmt.Fprintf(&sb, "Risk Score: %s\n", notAvailable)
	}

	sb.WriteString("\nRisk Factors:\n")
	if len(s.Risks) == 0 {
		sb.WriteString("- None reported\n")
	}
	for _, r := range s.Risks {
		fmt.Fprintf(&sb, "- %s: %s (Level: %s, Score: %s)\n",
			orDefault(r.Name, "Unnamed"), orDefault(r.Description, "no description"),
			orDefault(r.Level, notAvailable), number(r.Score))
	}

	if s.Rugged {
		sb.WriteString("\n" + RuggedWarning + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
