// Package currency formats amounts for display using the user's preferred
// currency code. Amounts are stored currency-agnostic; only the symbol and
// grouping vary by preference.
package currency

import (
	gomoney "github.com/Rhymond/go-money"

	"paisa/internal/core"
)

// DefaultCode is used when a preference carries an unknown currency code.
const DefaultCode = "INR"

// Supported is the closed set of codes the settings screen offers.
var Supported = []string{"INR", "USD", "EUR", "GBP", "JPY"}

// Format renders an amount with the symbol and grouping of the given
// currency code, e.g. Format(Money{123456}, "INR") -> "₹1,234.56".
func Format(m core.Money, code string) string {
	return gomoney.New(m.Cents, normalize(code)).Display()
}

// Symbol returns the display symbol for a currency code.
func Symbol(code string) string {
	return gomoney.GetCurrency(normalize(code)).Grapheme
}

// IsSupported reports whether the settings screen offers the code.
func IsSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

func normalize(code string) string {
	if gomoney.GetCurrency(code) == nil {
		return DefaultCode
	}
	return code
}
