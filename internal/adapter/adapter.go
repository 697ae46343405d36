// Package adapter turns token-data API responses into the plain-text reports
// returned to AI clients. Every failure is rendered as a single "Error: ..."
// string; nothing is retried.
package adapter

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrorPrefix starts every failure message.
const ErrorPrefix = "Error: "

// ErrorText renders err the way every tool reports failures.
func ErrorText(err error) string {
	return ErrorPrefix + err.Error()
}

// IsErrorText reports whether text is a rendered failure.
func IsErrorText(text string) bool {
	return strings.HasPrefix(text, ErrorPrefix)
}

const notAvailable = "N/A"

// exactUSD renders a dollar value with every significant digit.
func exactUSD(d decimal.NullDecimal) string {
	if !d.Valid {
		return notAvailable
	}
	return "$" + d.Decimal.String()
}

// groupedUSD renders a dollar value with thousands separators and exactly
// two decimal places.
func groupedUSD(d decimal.NullDecimal) string {
	if !d.Valid {
		return notAvailable
	}
	v := d.Decimal.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	whole, cents, _ := strings.Cut(v.StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + "$" + v.StringFixed(2)
	}
	return sign + "$" + humanize.BigComma(n) + "." + cents
}

func number(d decimal.NullDecimal) string {
	if !d.Valid {
		return notAvailable
	}
	return d.Decimal.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
