package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tokenguard/tokenguard/internal/adapter"
)

const addressParams = `{
	"type": "object",
	"properties": {
		"token_address": {
			"type": "string",
			"description": "Token mint address"
		}
	},
	"required": ["token_address"]
}`

func tokenAddress(params map[string]any) string {
	s, _ := params["token_address"].(string)
	return strings.TrimSpace(s)
}

// TokenRiskTool reports price, liquidity and risk factors of a token.
type TokenRiskTool struct {
	risk *adapter.TokenRisk
}

// NewTokenRiskTool creates a TokenRiskTool.
func NewTokenRiskTool(risk *adapter.TokenRisk) *TokenRiskTool {
	return &TokenRiskTool{risk: risk}
}

func (t *TokenRiskTool) Name() string { return string(ToolTokenRisk) }
func (t *TokenRiskTool) Description() string {
	return "Get price, liquidity, market cap, risk score and risk factors for a token. Warns when the token has been rugged."
}
func (t *TokenRiskTool) Parameters() json.RawMessage { return json.RawMessage(addressParams) }

func (t *TokenRiskTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	address := tokenAddress(params)
	if address == "" {
		return "Error: token_address is required", nil
	}
	return t.risk.Render(ctx, address), nil
}

// HolderConcentrationTool reports how much supply the top holders own.
type HolderConcentrationTool struct {
	holders *adapter.HolderConcentration
}

// NewHolderConcentrationTool creates a HolderConcentrationTool.
func NewHolderConcentrationTool(holders *adapter.HolderConcentration) *HolderConcentrationTool {
	return &HolderConcentrationTool{holders: holders}
}

func (t *HolderConcentrationTool) Name() string { return string(ToolHolderConcentration) }
func (t *HolderConcentrationTool) Description() string {
	return "List the top 10 holders of a token with their share of supply and flag dangerous concentration."
}
func (t *HolderConcentrationTool) Parameters() json.RawMessage { return json.RawMessage(addressParams) }

func (t *HolderConcentrationTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	address := tokenAddress(params)
	if address == "" {
		return "Error: token_address is required", nil
	}
	return t.holders.Render(ctx, address), nil
}
