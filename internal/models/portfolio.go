package models

import "github.com/shopspring/decimal"

// PortfolioSnapshot is a point-in-time aggregate of a user's account.
// It is recomputed on every load and never cached across views.
type PortfolioSnapshot struct {
	CashBalance        decimal.Decimal
	HoldingsValue      decimal.Decimal
	TotalValue         decimal.Decimal
	DailyChange        decimal.Decimal
	DailyChangePercent decimal.Decimal
}

// PreviousTotal returns the portfolio value before today's move.
func (p PortfolioSnapshot) PreviousTotal() decimal.Decimal {
	return p.TotalValue.Sub(p.DailyChange)
}
