package trading

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/api"
)

// PositionOracle answers how many shares of a stock a user currently holds.
// Lookups are cached per (user, stock); a successful order submission must
// invalidate the entry so the next sell re-fetches.
type PositionOracle struct {
	client api.Client
	logger zerolog.Logger

	mu    sync.RWMutex
	cache map[positionKey]decimal.Decimal
}

type positionKey struct {
	userID  string
	stockID string
}

// NewPositionOracle creates a new position oracle.
func NewPositionOracle(client api.Client, logger zerolog.Logger) *PositionOracle {
	return &PositionOracle{
		client: client,
		logger: logger,
		cache:  make(map[positionKey]decimal.Decimal),
	}
}

// SharesOwned returns the quantity held. Any failure degrades to zero rather
// than propagating, so the validator still rejects oversized sells (fail-closed).
func (p *PositionOracle) SharesOwned(ctx context.Context, userID, stockID string) decimal.Decimal {
	key := positionKey{userID: userID, stockID: stockID}

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return cached
	}

	shares, err := p.client.GetShares(ctx, userID, stockID)
	if err != nil {
		p.logger.Warn().
			Str("stock_id", stockID).
			Err(err).
			Msg("shares lookup failed, treating position as empty")
		return decimal.Zero
	}
	if shares.Sign() < 0 {
		shares = decimal.Zero
	}

	p.mu.Lock()
	p.cache[key] = shares
	p.mu.Unlock()

	return shares
}

// Invalidate drops the cached quantity for one (user, stock) pair.
func (p *PositionOracle) Invalidate(userID, stockID string) {
	p.mu.Lock()
	delete(p.cache, positionKey{userID: userID, stockID: stockID})
	p.mu.Unlock()
}
