package api

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a decimal that unmarshals defensively. Monetary and share values
// cross the wire as floats or numeric strings depending on endpoint; anything
// non-numeric or missing becomes zero so NaN never reaches the UI.
type Number struct {
	decimal.Decimal
}

// UnmarshalJSON accepts a JSON number, a quoted numeric string, or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		n.Decimal = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		n.Decimal = decimal.Zero
		return nil
	}

	n.Decimal = d
	return nil
}

// ParseDecimal converts an arbitrary string to a decimal, treating anything
// unparseable as zero.
func ParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
