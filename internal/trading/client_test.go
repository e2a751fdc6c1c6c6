package trading

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"cloudex-trader/internal/models"
)

// fakeClient is an in-memory api.Client. Each method delegates to an optional
// hook; unhooked methods fail loudly so a test cannot silently depend on
// behavior it did not arrange.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	searchStocksFn  func(ctx context.Context, query string) ([]models.Suggestion, error)
	resolveSymbolFn func(ctx context.Context, symbol string) (string, decimal.Decimal, error)
	getSharesFn     func(ctx context.Context, userID, stockID string) (decimal.Decimal, error)
	buySellFn       func(ctx context.Context, order *models.Order) (*models.OrderResult, error)
	balanceFn       func(ctx context.Context, userID string) (decimal.Decimal, error)
	portfolioFn     func(ctx context.Context, userID string) ([]models.Holding, error)
	dailyChangeFn   func(ctx context.Context, userID string) (decimal.Decimal, error)
	wishlistFn      func(ctx context.Context, userID string) ([]models.WishlistEntry, error)
	addWishFn       func(ctx context.Context, userID, stockID string) error
	removeWishFn    func(ctx context.Context, userID, stockID string) error
	marketHoursFn   func(ctx context.Context) (*models.MarketHours, error)
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(map[string]int)}
}

func (f *fakeClient) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeClient) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeClient) SearchStocks(ctx context.Context, query string) ([]models.Suggestion, error) {
	f.record("SearchStocks")
	if f.searchStocksFn == nil {
		return nil, fmt.Errorf("SearchStocks not stubbed")
	}
	return f.searchStocksFn(ctx, query)
}

func (f *fakeClient) ResolveSymbol(ctx context.Context, symbol string) (string, decimal.Decimal, error) {
	f.record("ResolveSymbol")
	if f.resolveSymbolFn == nil {
		return "", decimal.Zero, fmt.Errorf("ResolveSymbol not stubbed")
	}
	return f.resolveSymbolFn(ctx, symbol)
}

func (f *fakeClient) GetShares(ctx context.Context, userID, stockID string) (decimal.Decimal, error) {
	f.record("GetShares")
	if f.getSharesFn == nil {
		return decimal.Zero, fmt.Errorf("GetShares not stubbed")
	}
	return f.getSharesFn(ctx, userID, stockID)
}

func (f *fakeClient) GetAllStocks(ctx context.Context) ([]models.Stock, error) {
	f.record("GetAllStocks")
	return nil, fmt.Errorf("GetAllStocks not stubbed")
}

func (f *fakeClient) GetTopGainers(ctx context.Context) ([]models.Stock, error) {
	f.record("GetTopGainers")
	return nil, fmt.Errorf("GetTopGainers not stubbed")
}

func (f *fakeClient) GetTopLosers(ctx context.Context) ([]models.Stock, error) {
	f.record("GetTopLosers")
	return nil, fmt.Errorf("GetTopLosers not stubbed")
}

func (f *fakeClient) BuySell(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
	f.record("BuySell")
	if f.buySellFn == nil {
		return nil, fmt.Errorf("BuySell not stubbed")
	}
	return f.buySellFn(ctx, order)
}

func (f *fakeClient) GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	f.record("GetUserBalance")
	if f.balanceFn == nil {
		return decimal.Zero, fmt.Errorf("GetUserBalance not stubbed")
	}
	return f.balanceFn(ctx, userID)
}

func (f *fakeClient) GetPortfolio(ctx context.Context, userID string) ([]models.Holding, error) {
	f.record("GetPortfolio")
	if f.portfolioFn == nil {
		return nil, fmt.Errorf("GetPortfolio not stubbed")
	}
	return f.portfolioFn(ctx, userID)
}

func (f *fakeClient) GetDailyPortfolioChange(ctx context.Context, userID string) (decimal.Decimal, error) {
	f.record("GetDailyPortfolioChange")
	if f.dailyChangeFn == nil {
		return decimal.Zero, fmt.Errorf("GetDailyPortfolioChange not stubbed")
	}
	return f.dailyChangeFn(ctx, userID)
}

func (f *fakeClient) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	f.record("GetTransactions")
	return nil, fmt.Errorf("GetTransactions not stubbed")
}

func (f *fakeClient) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	f.record("GetUserProfile")
	return nil, fmt.Errorf("GetUserProfile not stubbed")
}

func (f *fakeClient) EditProfile(ctx context.Context, userID, username, email, password string) error {
	f.record("EditProfile")
	return fmt.Errorf("EditProfile not stubbed")
}

func (f *fakeClient) AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	f.record("AddFunds")
	return decimal.Zero, fmt.Errorf("AddFunds not stubbed")
}

func (f *fakeClient) WithdrawFunds(ctx context.Context, userID string, amount decimal.Decimal) error {
	f.record("WithdrawFunds")
	return fmt.Errorf("WithdrawFunds not stubbed")
}

func (f *fakeClient) GetFullWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	f.record("GetFullWishlist")
	if f.wishlistFn == nil {
		return nil, fmt.Errorf("GetFullWishlist not stubbed")
	}
	return f.wishlistFn(ctx, userID)
}

func (f *fakeClient) AddToWishlist(ctx context.Context, userID, stockID string) error {
	f.record("AddToWishlist")
	if f.addWishFn == nil {
		return fmt.Errorf("AddToWishlist not stubbed")
	}
	return f.addWishFn(ctx, userID, stockID)
}

func (f *fakeClient) RemoveFromWishlist(ctx context.Context, userID, stockID string) error {
	f.record("RemoveFromWishlist")
	if f.removeWishFn == nil {
		return fmt.Errorf("RemoveFromWishlist not stubbed")
	}
	return f.removeWishFn(ctx, userID, stockID)
}

func (f *fakeClient) Login(ctx context.Context, username, email, password string) (*models.User, error) {
	f.record("Login")
	return nil, fmt.Errorf("Login not stubbed")
}

func (f *fakeClient) Logout(ctx context.Context, userID string) error {
	f.record("Logout")
	return fmt.Errorf("Logout not stubbed")
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	f.record("Register")
	return fmt.Errorf("Register not stubbed")
}

func (f *fakeClient) GetRole(ctx context.Context, userID string) (models.Role, error) {
	f.record("GetRole")
	return "", fmt.Errorf("GetRole not stubbed")
}

func (f *fakeClient) CreateStock(ctx context.Context, companyName, symbol, description string, price decimal.Decimal) (string, error) {
	f.record("CreateStock")
	return "", fmt.Errorf("CreateStock not stubbed")
}

func (f *fakeClient) UpdateStock(ctx context.Context, stockID, companyName, description string) error {
	f.record("UpdateStock")
	return fmt.Errorf("UpdateStock not stubbed")
}

func (f *fakeClient) DeleteStock(ctx context.Context, stockID string) error {
	f.record("DeleteStock")
	return fmt.Errorf("DeleteStock not stubbed")
}

func (f *fakeClient) DeleteUser(ctx context.Context, userID string) error {
	f.record("DeleteUser")
	return fmt.Errorf("DeleteUser not stubbed")
}

func (f *fakeClient) GetMarketHours(ctx context.Context) (*models.MarketHours, error) {
	f.record("GetMarketHours")
	if f.marketHoursFn == nil {
		return nil, fmt.Errorf("GetMarketHours not stubbed")
	}
	return f.marketHoursFn(ctx)
}
