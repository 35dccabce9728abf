package pricing

import (
	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Converter translates source-currency amounts into the display currency
// using a fixed exchange rate. No rounding happens until Format.
type Converter struct {
	rate decimal.Decimal
}

// NewConverter builds a converter for the given exchange rate.
func NewConverter(rate decimal.Decimal) (*Converter, error) {
	if !rate.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exchange rate must be positive")
	}
	return &Converter{rate: rate}, nil
}

// Convert multiplies the amount by the fixed rate. Negative amounts are a
// caller contract violation and are rejected.
func (c *Converter) Convert(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-negative")
	}
	return amount.Mul(c.rate), nil
}

// Rate returns the configured exchange rate.
func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// Format renders an amount as a fixed two-decimal string, half-up rounded.
// The currency symbol is a presentation concern and is not included.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
