package schema

import "github.com/shopspring/decimal"

// HolderRecord is one account in the holders response.
type HolderRecord struct {
	Wallet     string          `json:"wallet"`
	Addr       string          `json:"address"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Address returns the wallet, falling back to the address field.
func (h HolderRecord) Address() string {
	if h.Wallet != "" {
		return h.Wallet
	}
	return h.Addr
}

// HoldersResponse mirrors GET /tokens/{address}/holders.
type HoldersResponse struct {
	Total    int            `json:"total"`
	Accounts []HolderRecord `json:"accounts"`
}

// HolderFlag marks a single holder that crossed a concentration threshold.
type HolderFlag int

const (
	FlagNone HolderFlag = iota
	FlagOver20
	FlagOver50
	FlagOver90
)

// RankedHolder is a holder with its threshold classification.
type RankedHolder struct {
	Rank int
	HolderRecord
	Flag HolderFlag
}

// HolderReport is the outcome of a top-N concentration check.
type HolderReport struct {
	Address      string
	Holders      []RankedHolder
	TopTotal     decimal.Decimal
	Concentrated bool
}
