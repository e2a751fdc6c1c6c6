package cli

import (
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Property: FormatUSD always produces a dollar sign, exactly two decimal
// places, Western thousands grouping, and a value that parses back to the
// cent-rounded input.
func TestProperty_USDFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	grouped := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatUSD produces valid grouped format", prop.ForAll(
		func(cents int64) bool {
			amount := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
			formatted := FormatUSD(amount)

			body := formatted
			if cents < 0 {
				if !strings.HasPrefix(body, "-$") {
					return false
				}
				body = strings.TrimPrefix(body, "-$")
			} else {
				if !strings.HasPrefix(body, "$") {
					return false
				}
				body = strings.TrimPrefix(body, "$")
			}

			parts := strings.Split(body, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				return false
			}
			if !grouped.MatchString(parts[0]) {
				return false
			}

			// Strip grouping and parse back.
			plain := strings.ReplaceAll(body, ",", "")
			if cents < 0 {
				plain = "-" + plain
			}
			parsed, err := decimal.NewFromString(plain)
			if err != nil {
				return false
			}
			return parsed.Equal(amount)
		},
		gen.Int64Range(-1_000_000_000_000, 1_000_000_000_000),
	))

	properties.TestingRun(t)
}

// Property: FormatPercent carries a sign exactly when the value rounds
// positive, and always ends with a percent sign.
func TestProperty_PercentFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatPercent sign and suffix", prop.ForAll(
		func(hundredths int64) bool {
			value := decimal.NewFromInt(hundredths).Div(decimal.NewFromInt(100))
			formatted := FormatPercent(value)

			if !strings.HasSuffix(formatted, "%") {
				return false
			}
			switch {
			case value.Sign() > 0:
				return strings.HasPrefix(formatted, "+")
			case value.Sign() < 0:
				return strings.HasPrefix(formatted, "-")
			default:
				return formatted == "0.00%"
			}
		},
		gen.Int64Range(-1_000_000, 1_000_000),
	))

	properties.TestingRun(t)
}
