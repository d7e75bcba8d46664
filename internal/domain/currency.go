package domain

import (
	"strings"
)

const (
	CurrencyUSD = "USD"
)

// Currency is an immutable currency identified by its label.
type Currency struct {
	label  string
	symbol string
}

// Label returns the currency label, e.g. "USD".
func (c Currency) Label() string {
	return c.label
}

// Symbol returns the currency symbol, e.g. "$".
func (c Currency) Symbol() string {
	return c.symbol
}

var currencyVariants = map[string]func() Currency{
	CurrencyUSD: func() Currency { return Currency{label: CurrencyUSD, symbol: "$"} },
}

// NewCurrency creates a Currency from a label, ignoring surrounding spaces and case.
func NewCurrency(label string) (Currency, error) {
	create, ok := currencyVariants[strings.ToUpper(strings.TrimSpace(label))]
	if !ok {
		return Currency{}, &UnknownVariantError{Family: "currency", Value: label}
	}

	return create(), nil
}
