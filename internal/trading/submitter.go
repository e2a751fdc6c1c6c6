package trading

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/logging"
	"cloudex-trader/internal/models"
)

// SubmitState is the lifecycle state of one order form.
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns the state name.
func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateLoading:
		return "LOADING"
	case StateSuccess:
		return "SUCCESS"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Submitter packages a validated order and submits it to the transaction
// endpoint. Submission is strictly sequential: resolve, then position lookup
// for sells, then validate, then submit. Nothing is retried automatically.
type Submitter struct {
	client api.Client
	res    *Resolver
	oracle *PositionOracle
	fees   *FeeCalculator
	logger zerolog.Logger
}

// NewSubmitter creates a new order submitter.
func NewSubmitter(client api.Client, res *Resolver, oracle *PositionOracle, fees *FeeCalculator, logger zerolog.Logger) *Submitter {
	return &Submitter{
		client: client,
		res:    res,
		oracle: oracle,
		fees:   fees,
		logger: logger,
	}
}

// Submit runs the full submission sequence for one order attempt. The
// returned order carries the resolved stock id, price and fee. On success the
// oracle cache entry for the stock is invalidated.
func (s *Submitter) Submit(ctx context.Context, userID string, side models.OrderSide, symbol, sharesInput string) (*models.Order, *models.OrderResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	order := &models.Order{
		UserID: userID,
		Symbol: symbol,
		Side:   side,
	}

	stockID, price, err := s.res.Resolve(ctx, symbol)
	if err != nil {
		if errors.IsNotFound(err) {
			return order, nil, errors.NewValidationError("symbol", symbol, "Unknown symbol.")
		}
		return order, nil, err
	}
	order.StockID = stockID
	order.PricePerShare = price

	shares, err := ParseShares(sharesInput)
	if err != nil {
		return order, nil, err
	}
	order.Shares = shares
	order.FeeAmount = s.fees.Fee(shares, price)

	owned := decimal.Zero
	if side == models.OrderSideSell {
		owned = s.oracle.SharesOwned(ctx, userID, stockID)
	}

	if err := ValidateOrder(order, owned); err != nil {
		return order, nil, err
	}

	result, err := s.client.BuySell(ctx, order)
	if err != nil {
		logging.LogOrder(s.logger, symbol, string(side), "failed", "")
		return order, nil, err
	}

	logging.LogOrder(s.logger, symbol, string(side), result.Status, result.TransactionID)

	if result.Succeeded() {
		// Next sell of this stock must re-fetch the position.
		s.oracle.Invalidate(userID, stockID)
	}

	return order, result, nil
}

// OrderForm models the buy/sell form's state machine:
//
//	IDLE -> LOADING -> {SUCCESS, ERROR}
//
// Success clears the symbol and resets shares to "0"; failure preserves the
// inputs so the user can correct and resubmit. Any edit from a terminal state
// returns the form to IDLE and clears the banner. Success banners auto-clear
// after a TTL.
type OrderForm struct {
	submitter *Submitter
	bannerTTL time.Duration

	mu          sync.Mutex
	symbol      string
	shares      string
	side        models.OrderSide
	state       SubmitState
	banner      string
	bannerTimer *time.Timer
}

// NewOrderForm creates an idle order form.
func NewOrderForm(submitter *Submitter, bannerTTL time.Duration) *OrderForm {
	return &OrderForm{
		submitter: submitter,
		bannerTTL: bannerTTL,
		side:      models.OrderSideBuy,
		state:     StateIdle,
	}
}

// SetSymbol records a symbol edit.
func (f *OrderForm) SetSymbol(symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.symbol = strings.ToUpper(strings.TrimSpace(symbol))
	f.resetToIdleLocked()
}

// SetShares records a share-count edit.
func (f *OrderForm) SetShares(shares string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shares = strings.TrimSpace(shares)
	f.resetToIdleLocked()
}

// SetSide switches between BUY and SELL.
func (f *OrderForm) SetSide(side models.OrderSide) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.side = side
	f.resetToIdleLocked()
}

// resetToIdleLocked clears any terminal banner after an edit.
func (f *OrderForm) resetToIdleLocked() {
	if f.state == StateSuccess || f.state == StateError {
		f.state = StateIdle
		f.banner = ""
	}
	if f.bannerTimer != nil {
		f.bannerTimer.Stop()
		f.bannerTimer = nil
	}
}

// Symbol returns the current symbol input.
func (f *OrderForm) Symbol() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.symbol
}

// Shares returns the current share-count input.
func (f *OrderForm) Shares() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shares
}

// State returns the current form state.
func (f *OrderForm) State() SubmitState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Banner returns the current banner message, if any.
func (f *OrderForm) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

// Submit runs one submission attempt with the form's current inputs.
func (f *OrderForm) Submit(ctx context.Context, userID string) (*models.Order, *models.OrderResult, error) {
	f.mu.Lock()
	if f.state == StateLoading {
		f.mu.Unlock()
		return nil, nil, errors.NewValidationError("form", "", "A submission is already in progress.")
	}
	f.state = StateLoading
	f.banner = ""
	side, symbol, shares := f.side, f.symbol, f.shares
	f.mu.Unlock()

	order, result, err := f.submitter.Submit(ctx, userID, side, symbol, shares)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil || !result.Succeeded() {
		f.state = StateError
		if err != nil {
			f.banner = errors.UserMessage(err)
		} else {
			f.banner = result.Message
		}
		// Inputs stay as entered so the user can correct and resubmit.
		return order, result, err
	}

	f.state = StateSuccess
	f.banner = result.Message
	f.symbol = ""
	f.shares = "0"
	f.scheduleBannerClearLocked()
	return order, result, nil
}

// scheduleBannerClearLocked arms the success banner auto-clear timer.
func (f *OrderForm) scheduleBannerClearLocked() {
	if f.bannerTimer != nil {
		f.bannerTimer.Stop()
	}
	f.bannerTimer = time.AfterFunc(f.bannerTTL, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == StateSuccess {
			f.state = StateIdle
			f.banner = ""
		}
	})
}
