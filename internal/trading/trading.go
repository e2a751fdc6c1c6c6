// Package trading implements the order-submission and portfolio-valuation
// workflows: symbol resolution, position lookup, client-side validation,
// order submission, and snapshot aggregation.
package trading

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeCalculator computes the commission for an order.
type FeeCalculator struct {
	percent decimal.Decimal
}

// NewFeeCalculator creates a fee calculator charging the given percentage of
// the gross order amount.
func NewFeeCalculator(percent float64) *FeeCalculator {
	return &FeeCalculator{percent: decimal.NewFromFloat(percent)}
}

// Fee returns the fee for an order of shares x price, rounded to cents.
func (f *FeeCalculator) Fee(shares, pricePerShare decimal.Decimal) decimal.Decimal {
	return shares.Mul(pricePerShare).Mul(f.percent).Div(hundred).Round(2)
}
