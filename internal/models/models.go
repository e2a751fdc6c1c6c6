// Package models defines the domain types shared across the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxSymbolLength is the maximum length of a ticker symbol.
const MaxSymbolLength = 5

// Role represents a user role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Stock represents a tradable stock as reported by the exchange.
type Stock struct {
	ID            string
	Symbol        string
	CompanyName   string
	Description   string
	Price         decimal.Decimal
	PreviousPrice decimal.Decimal
	IsTradable    bool
}

// ChangePercent returns the percentage move from the previous price.
// Returns zero when the previous price is missing or non-positive.
func (s Stock) ChangePercent() decimal.Decimal {
	if s.PreviousPrice.Sign() <= 0 {
		return decimal.Zero
	}
	return s.Price.Sub(s.PreviousPrice).Div(s.PreviousPrice).Mul(decimal.NewFromInt(100))
}

// Suggestion is a single incremental-search match.
type Suggestion struct {
	StockID string
	Symbol  string
}

// Holding represents one position line in a user's portfolio.
type Holding struct {
	StockID            string
	TotalShares        decimal.Decimal
	CurrentPrice       decimal.Decimal
	PreviousTotalValue decimal.Decimal
}

// Value returns the current market value of the holding.
func (h Holding) Value() decimal.Decimal {
	return h.TotalShares.Mul(h.CurrentPrice)
}

// Transaction represents an executed transaction from the remote ledger.
type Transaction struct {
	ID            string
	StockID       string
	Symbol        string
	StockName     string
	Side          OrderSide
	Shares        decimal.Decimal
	PricePerShare decimal.Decimal
	FeeAmount     decimal.Decimal
	ExecutedAt    time.Time
}

// User represents an account on the exchange.
type User struct {
	ID       string
	Username string
	Email    string
	Role     Role
}

// WishlistEntry is a stock on a user's wishlist, with display details.
type WishlistEntry struct {
	StockID     string
	Symbol      string
	CompanyName string
	Price       decimal.Decimal
}

// MarketHours represents the exchange trading window for the current day.
type MarketHours struct {
	Open  string // "HH:MM"
	Close string // "HH:MM"
}
