// Package money holds the decimal parse/format helpers shared by the CLI.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Parse converts user input like "150", "150.5" or "150.50" into a decimal.
func Parse(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", input)
	}
	return amount, nil
}

// Format renders an amount with the currency's symbol and fraction rules,
// e.g. Format(1234.5, "USD") -> "$1,234.50".
func Format(amount decimal.Decimal, currency string) string {
	cur := gomoney.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// ValidCurrency reports whether code is a known ISO currency code.
func ValidCurrency(code string) bool {
	return gomoney.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) != nil
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
