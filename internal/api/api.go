// Package api provides the client for the remote CloudEx exchange API.
package api

import (
	"context"

	"github.com/shopspring/decimal"

	"cloudex-trader/internal/models"
)

// Client defines the operations the trading workflows depend on. The remote
// exchange owns stocks, positions and the ledger; the client only ever holds
// ephemeral read copies.
type Client interface {
	// Stock lookup
	SearchStocks(ctx context.Context, query string) ([]models.Suggestion, error)
	ResolveSymbol(ctx context.Context, symbol string) (stockID string, pricePerShare decimal.Decimal, err error)
	GetShares(ctx context.Context, userID, stockID string) (decimal.Decimal, error)
	GetAllStocks(ctx context.Context) ([]models.Stock, error)
	GetTopGainers(ctx context.Context) ([]models.Stock, error)
	GetTopLosers(ctx context.Context) ([]models.Stock, error)

	// Orders
	BuySell(ctx context.Context, order *models.Order) (*models.OrderResult, error)

	// Account
	GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetPortfolio(ctx context.Context, userID string) ([]models.Holding, error)
	GetDailyPortfolioChange(ctx context.Context, userID string) (decimal.Decimal, error)
	GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	WithdrawFunds(ctx context.Context, userID string, amount decimal.Decimal) error
	GetUserProfile(ctx context.Context, userID string) (*models.User, error)
	EditProfile(ctx context.Context, userID, username, email, password string) error

	// Wishlist
	GetFullWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	AddToWishlist(ctx context.Context, userID, stockID string) error
	RemoveFromWishlist(ctx context.Context, userID, stockID string) error

	// Auth
	Login(ctx context.Context, username, email, password string) (*models.User, error)
	Logout(ctx context.Context, userID string) error
	Register(ctx context.Context, username, email, password string) error
	GetRole(ctx context.Context, userID string) (models.Role, error)

	// Admin
	CreateStock(ctx context.Context, companyName, symbol, description string, price decimal.Decimal) (string, error)
	UpdateStock(ctx context.Context, stockID, companyName, description string) error
	DeleteStock(ctx context.Context, stockID string) error
	DeleteUser(ctx context.Context, userID string) error

	// Market
	GetMarketHours(ctx context.Context) (*models.MarketHours, error)
}
