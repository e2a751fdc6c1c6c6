package trading

import (
	"context"
	"time"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/models"
)

// MarketClock answers whether the exchange is currently open, using the
// server-configured trading window. The server enforces the window on every
// order regardless; this is a courtesy pre-check so the user is not surprised
// after filling in the form.
type MarketClock struct {
	client api.Client
	now    func() time.Time
}

// NewMarketClock creates a market clock.
func NewMarketClock(client api.Client) *MarketClock {
	return &MarketClock{client: client, now: time.Now}
}

// IsOpen reports whether the current wall-clock time falls inside the
// exchange trading window. An unreachable market-hours endpoint is treated as
// open; the order endpoint remains the authority.
func (m *MarketClock) IsOpen(ctx context.Context) bool {
	hours, err := m.client.GetMarketHours(ctx)
	if err != nil {
		return true
	}
	return withinWindow(m.now(), hours)
}

// withinWindow checks a time against an "HH:MM" open/close pair.
func withinWindow(now time.Time, hours *models.MarketHours) bool {
	open, err := time.Parse("15:04", hours.Open)
	if err != nil {
		return true
	}
	closeT, err := time.Parse("15:04", hours.Close)
	if err != nil {
		return true
	}

	minutes := now.Hour()*60 + now.Minute()
	openMin := open.Hour()*60 + open.Minute()
	closeMin := closeT.Hour()*60 + closeT.Minute()

	return minutes >= openMin && minutes <= closeMin
}
