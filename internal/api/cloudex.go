package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/logging"
	"cloudex-trader/internal/models"
)

// CloudExClient implements Client against the CloudEx HTTP API.
type CloudExClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewCloudExClient creates a new CloudEx API client.
func NewCloudExClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *CloudExClient {
	return &CloudExClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// apiEnvelope is the error shape every CloudEx endpoint uses on failure.
type apiEnvelope struct {
	Error string `json:"error"`
}

func (c *CloudExClient) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	logging.LogAPICall(c.logger, method, path, time.Since(start), err)
	if err != nil {
		return errors.NewNetworkError(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env apiEnvelope
		_ = json.Unmarshal(data, &env)
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return errors.NewAPIError(resp.StatusCode, path, msg, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewAPIError(resp.StatusCode, path, "malformed response", err)
	}
	return nil
}

func (c *CloudExClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *CloudExClient) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// SearchStocks fetches incremental-search suggestions for a symbol prefix.
// The endpoint returns a sequence of [id, symbol] pairs.
func (c *CloudExClient) SearchStocks(ctx context.Context, query string) ([]models.Suggestion, error) {
	var rows [][]interface{}
	params := url.Values{"query": {query}}
	if err := c.get(ctx, "/stocks/search", params, &rows); err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			StockID: fmt.Sprint(row[0]),
			Symbol:  fmt.Sprint(row[1]),
		})
	}
	return suggestions, nil
}

// ResolveSymbol resolves an exact symbol to a stock id and current price.
func (c *CloudExClient) ResolveSymbol(ctx context.Context, symbol string) (string, decimal.Decimal, error) {
	var resp struct {
		StockID       string `json:"stock_id"`
		PricePerShare Number `json:"price_per_share"`
	}
	params := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/stocks/stock_id", params, &resp); err != nil {
		if errors.IsNotFound(err) {
			return "", decimal.Zero, errors.Wrapf(errors.ErrSymbolNotFound, "resolving %q", symbol)
		}
		return "", decimal.Zero, err
	}
	if resp.StockID == "" {
		return "", decimal.Zero, errors.Wrapf(errors.ErrSymbolNotFound, "resolving %q", symbol)
	}
	return resp.StockID, resp.PricePerShare.Decimal, nil
}

// GetShares returns the quantity of a stock the user currently holds.
func (c *CloudExClient) GetShares(ctx context.Context, userID, stockID string) (decimal.Decimal, error) {
	var resp struct {
		SharesOwned Number `json:"shares_owned"`
	}
	params := url.Values{"user_id": {userID}, "stock_id": {stockID}}
	if err := c.get(ctx, "/stocks/get_shares", params, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.SharesOwned.Decimal, nil
}

// stockDTO is the wire shape of a stock record.
type stockDTO struct {
	StockID       string `json:"stock_id"`
	Symbol        string `json:"symbol"`
	CompanyName   string `json:"company_name"`
	Description   string `json:"description"`
	Price         Number `json:"price"`
	PreviousPrice Number `json:"previous_price"`
	IsTradable    bool   `json:"is_tradable"`
}

func (d stockDTO) toModel() models.Stock {
	return models.Stock{
		ID:            d.StockID,
		Symbol:        d.Symbol,
		CompanyName:   d.CompanyName,
		Description:   d.Description,
		Price:         d.Price.Decimal,
		PreviousPrice: d.PreviousPrice.Decimal,
		IsTradable:    d.IsTradable,
	}
}

// GetAllStocks lists every tradable stock on the exchange.
func (c *CloudExClient) GetAllStocks(ctx context.Context) ([]models.Stock, error) {
	var resp struct {
		Stocks []stockDTO `json:"stocks"`
	}
	if err := c.get(ctx, "/stocks/all", nil, &resp); err != nil {
		return nil, err
	}
	stocks := make([]models.Stock, 0, len(resp.Stocks))
	for _, dto := range resp.Stocks {
		stocks = append(stocks, dto.toModel())
	}
	return stocks, nil
}

// GetTopGainers returns the day's biggest percentage gainers.
func (c *CloudExClient) GetTopGainers(ctx context.Context) ([]models.Stock, error) {
	var resp struct {
		TopGainers []stockDTO `json:"top_gainers"`
	}
	if err := c.get(ctx, "/stocks/top_gainers", nil, &resp); err != nil {
		return nil, err
	}
	stocks := make([]models.Stock, 0, len(resp.TopGainers))
	for _, dto := range resp.TopGainers {
		stocks = append(stocks, dto.toModel())
	}
	return stocks, nil
}

// GetTopLosers returns the day's biggest percentage losers.
func (c *CloudExClient) GetTopLosers(ctx context.Context) ([]models.Stock, error) {
	var resp struct {
		TopLosers []stockDTO `json:"top_losers"`
	}
	if err := c.get(ctx, "/stocks/top_losers", nil, &resp); err != nil {
		return nil, err
	}
	stocks := make([]models.Stock, 0, len(resp.TopLosers))
	for _, dto := range resp.TopLosers {
		stocks = append(stocks, dto.toModel())
	}
	return stocks, nil
}

// BuySell submits an order to the transaction endpoint.
func (c *CloudExClient) BuySell(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
	body := map[string]interface{}{
		"user_id":          order.UserID,
		"stock_id":         order.StockID,
		"shares":           order.Shares.String(),
		"price_per_share":  order.PricePerShare.String(),
		"fee_amount":       order.FeeAmount.String(),
		"transaction_type": string(order.Side),
	}

	var resp struct {
		Status        string `json:"status"`
		Message       string `json:"message"`
		TransactionID string `json:"transaction_id"`
	}
	if err := c.post(ctx, "/stocks/buy_sell", body, &resp); err != nil {
		return nil, err
	}

	return &models.OrderResult{
		Status:        resp.Status,
		Message:       resp.Message,
		TransactionID: resp.TransactionID,
	}, nil
}

// GetUserBalance returns the user's available cash balance.
func (c *CloudExClient) GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var resp struct {
		Balance Number `json:"balance"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/get_user_balance", params, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance.Decimal, nil
}

// GetPortfolio returns the user's current holdings with live prices.
func (c *CloudExClient) GetPortfolio(ctx context.Context, userID string) ([]models.Holding, error) {
	var resp struct {
		Holdings []struct {
			StockID            string `json:"stock_id"`
			TotalShares        Number `json:"total_shares"`
			CurrentPrice       Number `json:"current_price"`
			PreviousTotalValue Number `json:"previous_total_value"`
		} `json:"holdings"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/get_portfolio", params, &resp); err != nil {
		return nil, err
	}

	holdings := make([]models.Holding, 0, len(resp.Holdings))
	for _, h := range resp.Holdings {
		holdings = append(holdings, models.Holding{
			StockID:            h.StockID,
			TotalShares:        h.TotalShares.Decimal,
			CurrentPrice:       h.CurrentPrice.Decimal,
			PreviousTotalValue: h.PreviousTotalValue.Decimal,
		})
	}
	return holdings, nil
}

// GetDailyPortfolioChange returns the server-computed daily delta. The value
// arrives as a numeric string.
func (c *CloudExClient) GetDailyPortfolioChange(ctx context.Context, userID string) (decimal.Decimal, error) {
	var resp struct {
		DailyPortfolioChange Number `json:"daily_portfolio_change"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/daily_portfolio_change", params, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.DailyPortfolioChange.Decimal, nil
}

// transactionTimeLayouts covers the timestamp formats the ledger emits.
var transactionTimeLayouts = []string{
	time.RFC1123,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseTransactionTime(s string) time.Time {
	for _, layout := range transactionTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GetTransactions returns the user's transaction history, newest first.
func (c *CloudExClient) GetTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	var resp struct {
		Transactions []struct {
			TransactionID   string `json:"transaction_id"`
			StockID         string `json:"stock_id"`
			TransactionType string `json:"transaction_type"`
			Shares          Number `json:"shares"`
			PricePerShare   Number `json:"price_per_share"`
			TransactionDate string `json:"transaction_date"`
			FeeAmount       Number `json:"total_amount"` // ledger reports the fee under this key
			StockName       string `json:"stock_name"`
			Symbol          string `json:"symbol"`
		} `json:"transactions"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/transactions", params, &resp); err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		txs = append(txs, models.Transaction{
			ID:            t.TransactionID,
			StockID:       t.StockID,
			Symbol:        t.Symbol,
			StockName:     t.StockName,
			Side:          models.OrderSide(strings.ToUpper(t.TransactionType)),
			Shares:        t.Shares.Decimal,
			PricePerShare: t.PricePerShare.Decimal,
			FeeAmount:     t.FeeAmount.Decimal,
			ExecutedAt:    parseTransactionTime(t.TransactionDate),
		})
	}
	return txs, nil
}

// AddFunds deposits cash into the user's wallet and returns the new balance.
func (c *CloudExClient) AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	body := map[string]interface{}{"user_id": userID, "amount": amount.String()}
	var resp struct {
		NewBalance Number `json:"new_balance"`
	}
	if err := c.post(ctx, "/user/add_funds", body, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.NewBalance.Decimal, nil
}

// WithdrawFunds withdraws cash from the user's wallet.
func (c *CloudExClient) WithdrawFunds(ctx context.Context, userID string, amount decimal.Decimal) error {
	body := map[string]interface{}{"user_id": userID, "amount": amount.String()}
	return c.post(ctx, "/user/withdraw_funds", body, nil)
}

// GetUserProfile returns the account's profile record.
func (c *CloudExClient) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	var resp struct {
		User struct {
			UserID   string `json:"user_id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/user_profile", params, &resp); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &models.User{
		ID:       resp.User.UserID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
	}, nil
}

// EditProfile updates the account's email and, when non-empty, its password.
// The endpoint requires username and email on every request; callers pass the
// current value for whichever field is unchanged. The password travels under
// the password_hash key but is hashed server-side.
func (c *CloudExClient) EditProfile(ctx context.Context, userID, username, email, password string) error {
	body := map[string]string{
		"user_id":  userID,
		"username": strings.ToLower(username),
		"email":    strings.ToLower(email),
	}
	if password != "" {
		body["password_hash"] = password
	}
	return c.do(ctx, http.MethodPut, "/user/edit_profile", nil, body, nil)
}

// GetFullWishlist returns the user's wishlist with stock details.
func (c *CloudExClient) GetFullWishlist(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	var resp struct {
		Watchlist []struct {
			StockID     string `json:"stock_id"`
			Symbol      string `json:"symbol"`
			CompanyName string `json:"company_name"`
			Price       Number `json:"price"`
		} `json:"watchlist"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/user/full_wishlist", params, &resp); err != nil {
		return nil, err
	}

	entries := make([]models.WishlistEntry, 0, len(resp.Watchlist))
	for _, w := range resp.Watchlist {
		entries = append(entries, models.WishlistEntry{
			StockID:     w.StockID,
			Symbol:      w.Symbol,
			CompanyName: w.CompanyName,
			Price:       w.Price.Decimal,
		})
	}
	return entries, nil
}

// AddToWishlist adds a stock to the user's wishlist.
func (c *CloudExClient) AddToWishlist(ctx context.Context, userID, stockID string) error {
	body := map[string]string{"user_id": userID, "stock_id": stockID}
	return c.post(ctx, "/stocks/add_wishlist", body, nil)
}

// RemoveFromWishlist removes a stock from the user's wishlist.
func (c *CloudExClient) RemoveFromWishlist(ctx context.Context, userID, stockID string) error {
	body := map[string]string{"user_id": userID, "stock_id": stockID}
	return c.post(ctx, "/stocks/remove_wishlist", body, nil)
}

// Login authenticates with a username or email plus password.
func (c *CloudExClient) Login(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{
		"username":      strings.ToLower(username),
		"email":         strings.ToLower(email),
		"password_hash": password,
	}
	var resp struct {
		Status string `json:"status"`
		User   struct {
			UserID   string `json:"user_id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		var ae *errors.APIError
		if errors.As(err, &ae) && ae.StatusCode == 401 {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	return &models.User{
		ID:       resp.User.UserID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
	}, nil
}

// Logout invalidates the user's server-side login state.
func (c *CloudExClient) Logout(ctx context.Context, userID string) error {
	body := map[string]string{"user_id": userID}
	return c.post(ctx, "/auth/logout", body, nil)
}

// Register creates a new account.
func (c *CloudExClient) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{
		"username":      strings.ToLower(username),
		"email":         strings.ToLower(email),
		"password_hash": password,
	}
	return c.post(ctx, "/auth/register", body, nil)
}

// GetRole returns the user's role name.
func (c *CloudExClient) GetRole(ctx context.Context, userID string) (models.Role, error) {
	var resp struct {
		RoleName string `json:"role_name"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.get(ctx, "/auth/get_role", params, &resp); err != nil {
		if errors.IsNotFound(err) {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}
	return models.Role(strings.ToLower(resp.RoleName)), nil
}

// CreateStock lists a new stock on the exchange (admin only, enforced remotely).
func (c *CloudExClient) CreateStock(ctx context.Context, companyName, symbol, description string, price decimal.Decimal) (string, error) {
	body := map[string]interface{}{
		"company_name": companyName,
		"symbol":       strings.ToUpper(symbol),
		"price":        price.String(),
		"description":  description,
	}
	var resp struct {
		StockID string `json:"stock_id"`
	}
	if err := c.post(ctx, "/stocks/create_stock", body, &resp); err != nil {
		return "", err
	}
	return resp.StockID, nil
}

// UpdateStock edits a stock's name and description. The endpoint requires
// both fields on every request; callers pass the current value for whichever
// field is unchanged. Price and tradability are not editable.
func (c *CloudExClient) UpdateStock(ctx context.Context, stockID, companyName, description string) error {
	body := map[string]string{
		"stock_id":     stockID,
		"company_name": companyName,
		"description":  description,
	}
	return c.do(ctx, http.MethodPut, "/stocks/edit", nil, body, nil)
}

// DeleteStock delists a stock.
func (c *CloudExClient) DeleteStock(ctx context.Context, stockID string) error {
	body := map[string]string{"stock_id": stockID}
	return c.do(ctx, http.MethodDelete, "/stocks/delete_stock", nil, body, nil)
}

// DeleteUser removes an account (admin only, enforced remotely).
func (c *CloudExClient) DeleteUser(ctx context.Context, userID string) error {
	body := map[string]string{"user_id": userID}
	return c.do(ctx, http.MethodDelete, "/user/delete_user", nil, body, nil)
}

// GetMarketHours returns today's trading window.
func (c *CloudExClient) GetMarketHours(ctx context.Context) (*models.MarketHours, error) {
	var resp struct {
		OpenTime  string `json:"open_time"`
		CloseTime string `json:"close_time"`
	}
	if err := c.get(ctx, "/api/market_hours", nil, &resp); err != nil {
		return nil, err
	}
	return &models.MarketHours{Open: resp.OpenTime, Close: resp.CloseTime}, nil
}
