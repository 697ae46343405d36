package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tokenguard/tokenguard/internal/adapter"
	"github.com/tokenguard/tokenguard/internal/schema"
	"github.com/tokenguard/tokenguard/internal/tools"
)

type addressSource struct {
	seen []string
}

func (a *addressSource) Token(_ context.Context, address string) (*schema.TokenResponse, error) {
	a.seen = append(a.seen, address)
	r := &schema.TokenResponse{}
	r.Token.Name = "Bonk"
	r.Token.Symbol = "BONK"
	return r, nil
}

func (a *addressSource) Holders(_ context.Context, address string) (*schema.HoldersResponse, error) {
	a.seen = append(a.seen, address)
	return &schema.HoldersResponse{}, nil
}

type failingTool struct{}

func (failingTool) Name() string                { return "failing" }
func (failingTool) Description() string         { return "" }
func (failingTool) Parameters() json.RawMessage { return nil }
func (failingTool) Execute(context.Context, map[string]any) (string, error) {
	return "", errors.New("upstream down")
}

func TestLookupText_ValidatesLikeTheToolLayer(t *testing.T) {
	src := &addressSource{}
	risk := tools.NewTokenRiskTool(adapter.NewTokenRisk(src, nil))
	holders := tools.NewHolderConcentrationTool(adapter.NewHolderConcentration(src, nil))

	tests := []struct {
		name string
		tool schema.Tool
		addr string
		want string
	}{
		{"empty risk", risk, "", "Error: token_address is required"},
		{"blank risk", risk, "   ", "Error: token_address is required"},
		{"blank holders", holders, "\t", "Error: token_address is required"},
		{"padded holders", holders, "  mint  ", "No holder data available."},
		{"tool error", failingTool{}, "mint", "Error: upstream down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lookupText(context.Background(), tt.tool, tt.addr); got != tt.want {
				t.Errorf("lookupText(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
	if len(src.seen) != 1 || src.seen[0] != "mint" {
		t.Errorf("expected one trimmed upstream lookup, got %q", src.seen)
	}
}
