package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/models"
	"cloudex-trader/internal/store"
	"cloudex-trader/internal/trading"
)

// addTradingCommands adds trading commands.
func addTradingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBuyCmd(app))
	rootCmd.AddCommand(newSellCmd(app))
	rootCmd.AddCommand(newQuoteCmd(app))
	rootCmd.AddCommand(newSuggestCmd(app))
	rootCmd.AddCommand(newSharesCmd(app))
}

func newBuyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <symbol> <shares>",
		Short: "Buy shares of a stock",
		Long: `Buy shares of a stock at the current market price.

The symbol is resolved against the exchange before submission, and the
order fee is computed from the configured fee percentage.`,
		Example: `  cloudex buy AAPL 10
  cloudex buy msft 2.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, app, models.OrderSideBuy, args[0], args[1])
		},
	}
}

func newSellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <symbol> <shares>",
		Short: "Sell shares of a stock",
		Long: `Sell shares of a stock at the current market price.

The sale is checked against the shares currently owned; selling more
than the owned quantity is rejected before anything reaches the exchange.`,
		Example: `  cloudex sell AAPL 10`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, app, models.OrderSideSell, args[0], args[1])
		},
	}
}

// runOrder drives one order submission through the form state machine.
func runOrder(cmd *cobra.Command, app *App, side models.OrderSide, symbol, shares string) error {
	output := NewOutput(cmd)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userID, err := requireUser(app, output)
	if err != nil {
		return err
	}

	clock := trading.NewMarketClock(app.Client)
	if !clock.IsOpen(ctx) {
		output.Warning("Market is closed. The exchange may reject this order.")
	}

	resolver := trading.NewResolver(app.Client, app.Logger)
	oracle := trading.NewPositionOracle(app.Client, app.Logger)
	fees := trading.NewFeeCalculator(app.Config.Trading.FeePercent)
	submitter := trading.NewSubmitter(app.Client, resolver, oracle, fees, app.Logger)

	form := trading.NewOrderForm(submitter, app.Config.Trading.BannerTTL())
	form.SetSide(side)
	form.SetSymbol(symbol)
	form.SetShares(shares)

	order, result, err := form.Submit(ctx, userID)

	if form.State() == trading.StateError {
		output.Error("%s", form.Banner())
		if err != nil {
			return err
		}
		return nil
	}

	if app.Store != nil && result != nil && result.Succeeded() {
		rec := &store.OrderRecord{
			UserID:        userID,
			Symbol:        order.Symbol,
			StockID:       order.StockID,
			Side:          order.Side,
			Shares:        order.Shares.String(),
			PricePerShare: order.PricePerShare.String(),
			FeeAmount:     order.FeeAmount.String(),
			TransactionID: result.TransactionID,
		}
		if err := app.Store.LogOrder(ctx, rec); err != nil {
			app.Logger.Warn().Err(err).Msg("failed to journal order")
		}
	}

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"symbol":          order.Symbol,
			"side":            string(order.Side),
			"shares":          order.Shares.String(),
			"price_per_share": order.PricePerShare.String(),
			"fee_amount":      order.FeeAmount.String(),
			"gross_amount":    order.GrossAmount().String(),
			"transaction_id":  result.TransactionID,
			"message":         result.Message,
		})
	}

	output.Success("✓ %s", form.Banner())
	output.Printf("  Symbol:   %s\n", order.Symbol)
	output.Printf("  Side:     %s\n", order.Side)
	output.Printf("  Shares:   %s\n", FormatShares(order.Shares))
	output.Printf("  Price:    %s\n", FormatUSD(order.PricePerShare))
	output.Printf("  Fee:      %s\n", FormatUSD(order.FeeAmount))
	output.Printf("  Total:    %s\n", FormatUSD(order.GrossAmount().Add(order.FeeAmount)))
	if result.TransactionID != "" {
		output.Dim("Transaction: %s", result.TransactionID)
	}
	return nil
}

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <symbol>",
		Short: "Show the current price for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resolver := trading.NewResolver(app.Client, app.Logger)
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))

			stockID, price, err := resolver.Resolve(ctx, symbol)
			if err != nil {
				output.Error("Lookup failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"symbol":   symbol,
					"stock_id": stockID,
					"price":    price.String(),
				})
			}

			output.Printf("%s  %s\n", symbol, FormatUSD(price))
			return nil
		},
	}
}

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Show symbol suggestions for a prefix",
		Long: `Show symbols starting with the given prefix, as the order form's
incremental search would. Prefixes longer than four letters or containing
non-letter characters return nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resolver := trading.NewResolver(app.Client, app.Logger)
			suggestions, err := resolver.Suggest(ctx, args[0])
			if err != nil {
				output.Error("Suggestion lookup failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(suggestions)
			}

			if len(suggestions) == 0 {
				output.Dim("No matches.")
				return nil
			}
			for _, s := range suggestions {
				output.Println(s.Symbol)
			}
			return nil
		},
	}
}

func newSharesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shares <symbol>",
		Short: "Show how many shares of a stock you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			resolver := trading.NewResolver(app.Client, app.Logger)
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))

			stockID, _, err := resolver.Resolve(ctx, symbol)
			if err != nil {
				output.Error("Lookup failed: %v", err)
				return err
			}

			oracle := trading.NewPositionOracle(app.Client, app.Logger)
			owned := oracle.SharesOwned(ctx, userID, stockID)

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"symbol": symbol,
					"shares": owned.String(),
				})
			}

			output.Printf("%s: %s shares\n", symbol, FormatShares(owned))
			return nil
		},
	}
}
