package trading

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/models"
)

// Wishlist applies optimistic wishlist toggles: the tentative state is
// recorded first, the request is issued, and a failure reverts to the prior
// snapshot. The revert path is explicit, never silently dropped.
type Wishlist struct {
	client api.Client
	logger zerolog.Logger

	mu      sync.Mutex
	members map[string]bool // stockID -> wished, tentative view
}

// NewWishlist creates a wishlist helper for one user session.
func NewWishlist(client api.Client, logger zerolog.Logger) *Wishlist {
	return &Wishlist{
		client:  client,
		logger:  logger,
		members: make(map[string]bool),
	}
}

// Load replaces the local view with the server's wishlist.
func (w *Wishlist) Load(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	entries, err := w.client.GetFullWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.members = make(map[string]bool, len(entries))
	for _, e := range entries {
		w.members[e.StockID] = true
	}
	w.mu.Unlock()

	return entries, nil
}

// Contains reports the tentative membership of a stock.
func (w *Wishlist) Contains(stockID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.members[stockID]
}

// Toggle flips a stock's wishlist membership optimistically. On request
// failure the local state reverts to the prior snapshot and the error is
// returned.
func (w *Wishlist) Toggle(ctx context.Context, userID, stockID string) (added bool, err error) {
	w.mu.Lock()
	prior := w.members[stockID]
	w.members[stockID] = !prior
	w.mu.Unlock()

	if prior {
		err = w.client.RemoveFromWishlist(ctx, userID, stockID)
	} else {
		err = w.client.AddToWishlist(ctx, userID, stockID)
	}

	if err != nil {
		// Compensating action: restore the snapshot taken before the toggle.
		w.mu.Lock()
		w.members[stockID] = prior
		w.mu.Unlock()
		w.logger.Warn().Str("stock_id", stockID).Err(err).Msg("wishlist toggle reverted")
		return prior, err
	}

	return !prior, nil
}
