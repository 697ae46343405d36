package schema

import "github.com/shopspring/decimal"

// USDValue is the {"usd": n} object the data API uses for prices and sizes.
type USDValue struct {
	USD decimal.NullDecimal `json:"usd"`
}

// Pool is one liquidity pool entry of a token response. Only the first pool
// is used for pricing.
type Pool struct {
	Price     USDValue `json:"price"`
	Liquidity USDValue `json:"liquidity"`
	MarketCap USDValue `json:"marketCap"`
}

// RiskFactor is a single reason contributing to a token's risk score.
type RiskFactor struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Level       string              `json:"level"`
	Score       decimal.NullDecimal `json:"score"`
}

// TokenResponse mirrors GET /tokens/{address}. Every field may be absent.
type TokenResponse struct {
	Token struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"token"`
	Pools []Pool `json:"pools"`
	Risk  struct {
		Score  decimal.NullDecimal `json:"score"`
		Rugged bool                `json:"rugged"`
		Risks  []RiskFactor        `json:"risks"`
	} `json:"risk"`
}

// TokenSnapshot is the flattened view of one token response.
type TokenSnapshot struct {
	Address   string
	Name      string
	Symbol    string
	Price     decimal.NullDecimal
	Liquidity decimal.NullDecimal
	MarketCap decimal.NullDecimal
	RiskScore decimal.NullDecimal
	Rugged    bool
	Risks     []RiskFactor
}

// Snapshot flattens the response. Pricing fields stay invalid when the pools
// list is empty.
func (r *TokenResponse) Snapshot(address string) *TokenSnapshot {
	s := &TokenSnapshot{
		Address:   address,
		Name:      r.Token.Name,
		Symbol:    r.Token.Symbol,
		RiskScore: r.Risk.Score,
		Rugged:    r.Risk.Rugged,
		Risks:     r.Risk.Risks,
	}
	if len(r.Pools) > 0 {
		p := r.Pools[0]
		s.Price = p.Price.USD
		s.Liquidity = p.Liquidity.USD
		s.MarketCap = p.MarketCap.USD
	}
	return s
}
