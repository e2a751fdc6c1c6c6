package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a dollar amount with thousands separators, e.g. $1,234.56.
func FormatUSD(amount decimal.Decimal) string {
	negative := amount.Sign() < 0
	if negative {
		amount = amount.Neg()
	}

	str := amount.StringFixed(2)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a percentage with sign, e.g. +1.25%.
func FormatPercent(value decimal.Decimal) string {
	sign := ""
	if value.Sign() > 0 {
		sign = "+"
	}
	return sign + value.StringFixed(2) + "%"
}

// FormatShares formats a share quantity, trimming trailing zeros so whole
// share counts print without a decimal point.
func FormatShares(shares decimal.Decimal) string {
	if shares.Equal(shares.Truncate(0)) {
		return shares.Truncate(0).String()
	}
	return shares.String()
}

// FormatDateTime formats a datetime in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}

// FormatDate formats a date in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("02-Jan-2006")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatSide renders an order side padded for column alignment.
func FormatSide(side string) string {
	return fmt.Sprintf("%-4s", side)
}
