package trading

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/models"
)

// ParseShares parses a share-count input. Quantities stay decimal throughout;
// nothing is truncated to an integer.
func ParseShares(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, errors.NewValidationError("shares", input, "Please enter a valid number of shares.")
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, errors.NewValidationError("shares", input, "Please enter a valid number of shares.")
	}
	return d, nil
}

// ValidateOrder enforces the client-side invariants before submission.
// Rules apply in precedence order: the symbol must be resolved, the share
// count must be positive, and a sell cannot exceed the owned quantity.
// ownedShares is only consulted for sells.
func ValidateOrder(order *models.Order, ownedShares decimal.Decimal) error {
	if order.StockID == "" {
		return errors.NewValidationError("symbol", order.Symbol, "Unknown symbol.")
	}

	if order.Shares.Sign() <= 0 {
		return errors.NewValidationError("shares", order.Shares.String(), "Please enter a valid number of shares.")
	}

	if order.Side == models.OrderSideSell && order.Shares.GreaterThan(ownedShares) {
		msg := fmt.Sprintf("Insufficient shares. You own %s shares of %s.",
			ownedShares.StringFixed(2), order.Symbol)
		return errors.NewValidationError("shares", order.Shares.String(), msg)
	}

	return nil
}
