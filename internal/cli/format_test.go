package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"small", "5", "$5.00"},
		{"cents", "0.5", "$0.50"},
		{"thousands", "1234.56", "$1,234.56"},
		{"millions", "1234567.89", "$1,234,567.89"},
		{"exact thousand", "1000", "$1,000.00"},
		{"negative", "-42.1", "-$42.10"},
		{"zero", "0", "$0.00"},
		{"rounds half up", "9.995", "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(decimal.RequireFromString(tt.input))
			if got != tt.want {
				t.Errorf("FormatUSD(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.25", "+1.25%"},
		{"-1.25", "-1.25%"},
		{"0", "0.00%"},
		{"0.005", "+0.01%"},
	}

	for _, tt := range tests {
		got := FormatPercent(decimal.RequireFromString(tt.input))
		if got != tt.want {
			t.Errorf("FormatPercent(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatShares(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10", "10"},
		{"10.00", "10"},
		{"2.5", "2.5"},
		{"0.125", "0.125"},
	}

	for _, tt := range tests {
		got := FormatShares(decimal.RequireFromString(tt.input))
		if got != tt.want {
			t.Errorf("FormatShares(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("Apple Inc", 20); got != "Apple Inc" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateString("International Business Machines", 10); got != "Interna..." {
		t.Errorf("truncated = %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	got := FormatDateTime(ts)
	if got == "" {
		t.Fatal("empty formatted time")
	}
}
