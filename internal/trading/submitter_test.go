package trading

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/models"
)

const testUserID = "4f2d8e1a-9c3b-4a6d-8e5f-1b2c3d4e5f6a"

// newTestSubmitter wires a submitter over the fake client with a known stock:
// AAPL at $100, 0.5% fee.
func newTestSubmitter(client *fakeClient) (*Submitter, *PositionOracle) {
	logger := zerolog.Nop()
	resolver := NewResolver(client, logger)
	oracle := NewPositionOracle(client, logger)
	fees := NewFeeCalculator(0.5)
	return NewSubmitter(client, resolver, oracle, fees, logger), oracle
}

func stubAAPL(client *fakeClient) {
	client.resolveSymbolFn = func(ctx context.Context, symbol string) (string, decimal.Decimal, error) {
		if symbol == "AAPL" {
			return "stock-1", decimal.NewFromInt(100), nil
		}
		return "", decimal.Zero, errors.ErrSymbolNotFound
	}
}

func TestSubmitBuySuccess(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	var submitted *models.Order
	client.buySellFn = func(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
		submitted = order
		return &models.OrderResult{Status: "success", Message: "Purchase successful!", TransactionID: "tx-1"}, nil
	}

	submitter, _ := newTestSubmitter(client)
	order, result, err := submitter.Submit(context.Background(), testUserID, models.OrderSideBuy, " aapl ", "10")
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("Submit() result = %+v, want success", result)
	}

	if submitted.StockID != "stock-1" {
		t.Errorf("submitted stock id = %q, want stock-1", submitted.StockID)
	}
	if !order.PricePerShare.Equal(decimal.NewFromInt(100)) {
		t.Errorf("price = %s, want 100", order.PricePerShare)
	}
	// 10 x 100 x 0.5% = 5
	if !order.FeeAmount.Equal(decimal.NewFromInt(5)) {
		t.Errorf("fee = %s, want 5", order.FeeAmount)
	}
	// A buy never consults the position oracle.
	if client.callCount("GetShares") != 0 {
		t.Errorf("buy consulted GetShares %d times, want 0", client.callCount("GetShares"))
	}
}

func TestSubmitUnknownSymbol(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)

	submitter, _ := newTestSubmitter(client)
	_, _, err := submitter.Submit(context.Background(), testUserID, models.OrderSideBuy, "ZZZZ", "10")

	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v, want validation error", err)
	}
	if verr.Message != "Unknown symbol." {
		t.Errorf("message = %q, want %q", verr.Message, "Unknown symbol.")
	}
	if client.callCount("BuySell") != 0 {
		t.Errorf("unknown symbol reached BuySell %d times, want 0", client.callCount("BuySell"))
	}
}

func TestSubmitSellChecksPosition(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	client.getSharesFn = func(ctx context.Context, userID, stockID string) (decimal.Decimal, error) {
		return decimal.NewFromInt(5), nil
	}

	submitter, _ := newTestSubmitter(client)
	_, _, err := submitter.Submit(context.Background(), testUserID, models.OrderSideSell, "AAPL", "10")

	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v, want validation error", err)
	}
	if verr.Message != "Insufficient shares. You own 5.00 shares of AAPL." {
		t.Errorf("message = %q", verr.Message)
	}
	if client.callCount("BuySell") != 0 {
		t.Errorf("oversized sell reached BuySell %d times, want 0", client.callCount("BuySell"))
	}
}

func TestSubmitSellFailsClosedOnPositionError(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	// GetShares is unstubbed and errors; the position degrades to zero, so
	// every sell is rejected rather than risking an oversell.
	submitter, _ := newTestSubmitter(client)
	_, _, err := submitter.Submit(context.Background(), testUserID, models.OrderSideSell, "AAPL", "1")

	if !errors.IsValidation(err) {
		t.Fatalf("Submit() error = %v, want validation error", err)
	}
	if client.callCount("BuySell") != 0 {
		t.Error("sell with unknown position reached the exchange")
	}
}

func TestSubmitSuccessInvalidatesPositionCache(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	client.getSharesFn = func(ctx context.Context, userID, stockID string) (decimal.Decimal, error) {
		return decimal.NewFromInt(50), nil
	}
	client.buySellFn = func(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
		return &models.OrderResult{Status: "success", Message: "Sale successful!"}, nil
	}

	submitter, oracle := newTestSubmitter(client)
	ctx := context.Background()

	// Prime the cache, then submit a successful sell.
	oracle.SharesOwned(ctx, testUserID, "stock-1")
	if _, _, err := submitter.Submit(ctx, testUserID, models.OrderSideSell, "AAPL", "10"); err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}

	before := client.callCount("GetShares")
	oracle.SharesOwned(ctx, testUserID, "stock-1")
	if client.callCount("GetShares") != before+1 {
		t.Error("position cache was not invalidated after a successful order")
	}
}

func TestOrderFormSuccessClearsInputs(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	client.buySellFn = func(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
		return &models.OrderResult{Status: "success", Message: "Purchase successful!", TransactionID: "tx-1"}, nil
	}

	submitter, _ := newTestSubmitter(client)
	form := NewOrderForm(submitter, 40*time.Millisecond)
	form.SetSymbol("AAPL")
	form.SetShares("10")

	_, result, err := form.Submit(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Submit() unexpected error: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("result = %+v, want success", result)
	}

	if form.State() != StateSuccess {
		t.Errorf("state = %s, want SUCCESS", form.State())
	}
	if form.Banner() != "Purchase successful!" {
		t.Errorf("banner = %q", form.Banner())
	}
	if form.Symbol() != "" || form.Shares() != "0" {
		t.Errorf("inputs not reset: symbol=%q shares=%q, want \"\" and \"0\"", form.Symbol(), form.Shares())
	}

	// The success banner auto-clears back to idle.
	time.Sleep(100 * time.Millisecond)
	if form.State() != StateIdle {
		t.Errorf("state after TTL = %s, want IDLE", form.State())
	}
	if form.Banner() != "" {
		t.Errorf("banner after TTL = %q, want empty", form.Banner())
	}
}

func TestOrderFormFailurePreservesInputs(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	client.buySellFn = func(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
		return &models.OrderResult{Status: "error", Message: "Insufficient funds."}, nil
	}

	submitter, _ := newTestSubmitter(client)
	form := NewOrderForm(submitter, time.Minute)
	form.SetSymbol("AAPL")
	form.SetShares("10")

	_, _, _ = form.Submit(context.Background(), testUserID)

	if form.State() != StateError {
		t.Errorf("state = %s, want ERROR", form.State())
	}
	if form.Banner() != "Insufficient funds." {
		t.Errorf("banner = %q, want exchange message", form.Banner())
	}
	if form.Symbol() != "AAPL" || form.Shares() != "10" {
		t.Errorf("inputs were not preserved: symbol=%q shares=%q", form.Symbol(), form.Shares())
	}
}

func TestOrderFormEditResetsTerminalState(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)

	submitter, _ := newTestSubmitter(client)
	form := NewOrderForm(submitter, time.Minute)
	form.SetSymbol("ZZZZ")
	form.SetShares("10")

	_, _, _ = form.Submit(context.Background(), testUserID)
	if form.State() != StateError {
		t.Fatalf("state = %s, want ERROR", form.State())
	}

	form.SetShares("5")
	if form.State() != StateIdle {
		t.Errorf("state after edit = %s, want IDLE", form.State())
	}
	if form.Banner() != "" {
		t.Errorf("banner after edit = %q, want empty", form.Banner())
	}
}

func TestOrderFormRejectsConcurrentSubmit(t *testing.T) {
	client := newFakeClient()
	stubAAPL(client)
	started := make(chan struct{})
	release := make(chan struct{})
	client.buySellFn = func(ctx context.Context, order *models.Order) (*models.OrderResult, error) {
		close(started)
		<-release
		return &models.OrderResult{Status: "success", Message: "Purchase successful!"}, nil
	}

	submitter, _ := newTestSubmitter(client)
	form := NewOrderForm(submitter, time.Minute)
	form.SetSymbol("AAPL")
	form.SetShares("10")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = form.Submit(context.Background(), testUserID)
	}()

	<-started
	_, _, err := form.Submit(context.Background(), testUserID)
	var verr *errors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("concurrent Submit() error = %v, want validation error", err)
	}
	if verr.Message != "A submission is already in progress." {
		t.Errorf("message = %q", verr.Message)
	}

	close(release)
	<-done
	if client.callCount("BuySell") != 1 {
		t.Errorf("BuySell calls = %d, want 1", client.callCount("BuySell"))
	}
}
