package trading

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/models"
)

// Resolver resolves ticker symbols to stock ids and prices, and serves
// incremental-search suggestions.
type Resolver struct {
	client api.Client
	logger zerolog.Logger
}

// NewResolver creates a new symbol resolver.
func NewResolver(client api.Client, logger zerolog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// validPrefix reports whether a partial symbol warrants a suggestion lookup.
// An empty prefix has nothing to match; a prefix at the maximum symbol length
// is already a full symbol, so another lookup would be redundant.
func validPrefix(prefix string) bool {
	if prefix == "" || len(prefix) >= models.MaxSymbolLength {
		return false
	}
	for _, r := range prefix {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Suggest returns stocks matching the given symbol prefix. Invalid prefixes
// return no suggestions without issuing a network call.
func (r *Resolver) Suggest(ctx context.Context, prefix string) ([]models.Suggestion, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !validPrefix(prefix) {
		return nil, nil
	}

	suggestions, err := r.client.SearchStocks(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Resolve performs an exact symbol lookup, returning the stock id and its
// current price per share.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (string, decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	stockID, price, err := r.client.ResolveSymbol(ctx, symbol)
	if err != nil {
		r.logger.Debug().Str("symbol", symbol).Err(err).Msg("symbol resolution failed")
		return "", decimal.Zero, err
	}
	return stockID, price, nil
}
