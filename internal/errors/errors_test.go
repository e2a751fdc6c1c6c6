package errors

import (
	"fmt"
	"testing"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		conflict   bool
		network    bool
	}{
		{
			name:       "validation error",
			err:        NewValidationError("shares", "x", "Please enter a valid number of shares."),
			validation: true,
		},
		{
			name:     "api 404",
			err:      NewAPIError(404, "/stocks/stock_id", "Stock not found", nil),
			notFound: true,
		},
		{
			name:     "symbol sentinel",
			err:      Wrapf(ErrSymbolNotFound, "resolving %q", "ZZZZ"),
			notFound: true,
		},
		{
			name:     "api 400",
			err:      NewAPIError(400, "/stocks/buy_sell", "Insufficient funds", nil),
			conflict: true,
		},
		{
			name:     "api 409",
			err:      NewAPIError(409, "/stocks/create_stock", "Symbol exists", nil),
			conflict: true,
		},
		{
			name:    "transport failure",
			err:     NewNetworkError("/stocks/all", fmt.Errorf("connection refused")),
			network: true,
		},
		{
			name: "server 500 is none of the above",
			err:  NewAPIError(500, "/stocks/all", "Internal Server Error", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsConflict(tt.err); got != tt.conflict {
				t.Errorf("IsConflict = %v, want %v", got, tt.conflict)
			}
			if got := IsNetwork(tt.err); got != tt.network {
				t.Errorf("IsNetwork = %v, want %v", got, tt.network)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"validation carries its message verbatim",
			NewValidationError("symbol", "ZZZZ", "Unknown symbol."),
			"Unknown symbol.",
		},
		{
			"not found",
			NewAPIError(404, "/stocks/stock_id", "Stock not found", nil),
			"Symbol not found.",
		},
		{
			"network",
			NewNetworkError("/stocks/all", fmt.Errorf("connection refused")),
			"Could not reach the exchange. Check your connection and try again.",
		},
		{
			"conflict surfaces the server message",
			NewAPIError(400, "/stocks/buy_sell", "Insufficient funds", nil),
			"Insufficient funds",
		},
		{
			"unknown falls back to generic",
			fmt.Errorf("something odd"),
			"Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesChain(t *testing.T) {
	wrapped := Wrap(ErrInsufficientFunds, "submitting order")
	if !Is(wrapped, ErrInsufficientFunds) {
		t.Error("Wrap broke the error chain")
	}
	if Wrap(nil, "anything") != nil {
		t.Error("Wrap(nil) != nil")
	}

	apiErr := NewAPIError(401, "/auth/login", "Invalid credentials", ErrInvalidCredentials)
	if !Is(apiErr, ErrInvalidCredentials) {
		t.Error("APIError.Unwrap not reachable through Is")
	}
}
