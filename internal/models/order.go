package models

import "github.com/shopspring/decimal"

// OrderSide represents the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Valid reports whether the side is one of BUY or SELL.
func (s OrderSide) Valid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// Order is the transient entity constructed for a single submission attempt.
// It is never persisted client-side; its lifetime is one request.
type Order struct {
	UserID        string
	StockID       string
	Symbol        string
	Side          OrderSide
	Shares        decimal.Decimal
	PricePerShare decimal.Decimal
	FeeAmount     decimal.Decimal
}

// GrossAmount returns shares x price, before fees.
func (o Order) GrossAmount() decimal.Decimal {
	return o.Shares.Mul(o.PricePerShare)
}

// OrderResult is the remote ledger's verdict on a submission.
type OrderResult struct {
	Status        string
	Message       string
	TransactionID string
}

// Succeeded reports whether the remote ledger accepted the order.
func (r OrderResult) Succeeded() bool {
	return r.Status == "success"
}
