package trading

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/models"
)

// Valuator combines cash balance, holdings, and the server-reported daily
// delta into a displayed net worth and percentage change.
type Valuator struct {
	client api.Client
	logger zerolog.Logger
}

// NewValuator creates a new portfolio valuator.
func NewValuator(client api.Client, logger zerolog.Logger) *Valuator {
	return &Valuator{client: client, logger: logger}
}

// Snapshot computes a point-in-time portfolio snapshot. The three backing
// reads are independent and issued concurrently; the snapshot is ready only
// once all three resolve. A single failing fetch fails the whole call rather
// than rendering partial data.
func (v *Valuator) Snapshot(ctx context.Context, userID string) (*models.PortfolioSnapshot, error) {
	var (
		balance     decimal.Decimal
		holdings    []models.Holding
		dailyChange decimal.Decimal

		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		b, err := v.client.GetUserBalance(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		balance = b
	}()
	go func() {
		defer wg.Done()
		h, err := v.client.GetPortfolio(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		holdings = h
	}()
	go func() {
		defer wg.Done()
		d, err := v.client.GetDailyPortfolioChange(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		dailyChange = d
	}()
	wg.Wait()

	if len(errs) > 0 {
		v.logger.Warn().Errs("errors", errs).Msg("portfolio snapshot failed")
		return nil, errs[0]
	}

	holdingsValue := decimal.Zero
	for _, h := range holdings {
		holdingsValue = holdingsValue.Add(h.Value())
	}

	totalValue := holdingsValue.Add(balance)

	// percentage = change / (total - change) * 100, with the denominator
	// guarded so a fresh or fully-drawn-down account reports 0, not an
	// infinity artifact.
	percent := decimal.Zero
	previousTotal := totalValue.Sub(dailyChange)
	if previousTotal.Sign() > 0 {
		percent = dailyChange.Div(previousTotal).Mul(hundred)
	}

	return &models.PortfolioSnapshot{
		CashBalance:        balance,
		HoldingsValue:      holdingsValue,
		TotalValue:         totalValue,
		DailyChange:        dailyChange,
		DailyChangePercent: percent,
	}, nil
}
