package domain

import (
	"github.com/shopspring/decimal"
)

// Price is the amount of a product in one currency.
type Price struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewPrice creates a Price, rejecting negative amounts and unknown currencies.
func NewPrice(amount decimal.Decimal, currencyLabel string) (Price, error) {
	if amount.IsNegative() {
		return Price{}, &InvalidInputError{Field: "amount", Reason: "Price amount cannot be negative."}
	}

	currency, err := NewCurrency(currencyLabel)
	if err != nil {
		return Price{}, err
	}

	return Price{Amount: amount, Currency: currency}, nil
}
