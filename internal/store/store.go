// Package store provides local persistence for the trading history.
package store

import (
	"context"
	"time"

	"cloudex-trader/internal/models"
)

// DataStore is the local journal of what this client did: every accepted
// order and every portfolio snapshot it rendered. The exchange remains the
// source of truth; this exists so history works offline.
type DataStore interface {
	// Orders
	LogOrder(ctx context.Context, rec *OrderRecord) error
	GetOrders(ctx context.Context, filter OrderFilter) ([]OrderRecord, error)

	// Snapshots
	SaveSnapshot(ctx context.Context, userID string, snap *models.PortfolioSnapshot) error
	GetSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotRecord, error)

	// Lifecycle
	Close() error
}

// OrderRecord is one accepted order as journaled locally.
type OrderRecord struct {
	ID            int64
	Timestamp     time.Time
	UserID        string
	Symbol        string
	StockID       string
	Side          models.OrderSide
	Shares        string
	PricePerShare string
	FeeAmount     string
	TransactionID string
}

// SnapshotRecord is one portfolio snapshot as journaled locally.
type SnapshotRecord struct {
	ID        int64
	Timestamp time.Time
	UserID    string
	Snapshot  models.PortfolioSnapshot
}

// OrderFilter represents filters for querying journaled orders.
type OrderFilter struct {
	UserID    string
	Symbol    string
	Side      models.OrderSide
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// SnapshotFilter represents filters for querying journaled snapshots.
type SnapshotFilter struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
