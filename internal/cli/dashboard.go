package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/models"
	"cloudex-trader/internal/trading"
)

// addDashboardCommands adds portfolio and market overview commands.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newStocksCmd(app))
	rootCmd.AddCommand(newMoversCmd(app))
	rootCmd.AddCommand(newMarketCmd(app))
}

func newPortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "portfolio",
		Aliases: []string{"pf"},
		Short:   "Show portfolio value and daily change",
		Long: `Show the portfolio snapshot: cash balance, holdings value, total
net worth, and today's change in dollars and percent.

All three backing reads must succeed; a partial snapshot is never shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			valuator := trading.NewValuator(app.Client, app.Logger)
			snap, err := valuator.Snapshot(ctx, userID)
			if err != nil {
				output.Error("Failed to load portfolio: %v", err)
				return err
			}

			if app.Store != nil {
				if err := app.Store.SaveSnapshot(ctx, userID, snap); err != nil {
					app.Logger.Warn().Err(err).Msg("failed to journal snapshot")
				}
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"cash_balance":         snap.CashBalance.String(),
					"holdings_value":       snap.HoldingsValue.String(),
					"total_value":          snap.TotalValue.String(),
					"daily_change":         snap.DailyChange.String(),
					"daily_change_percent": snap.DailyChangePercent.String(),
				})
			}

			output.Bold("Portfolio")
			output.Printf("  Cash:     %s\n", FormatUSD(snap.CashBalance))
			output.Printf("  Holdings: %s\n", FormatUSD(snap.HoldingsValue))
			output.Printf("  Total:    %s\n", FormatUSD(snap.TotalValue))
			output.Printf("  Today:    %s (%s)\n",
				output.FormatChangeUSD(snap.DailyChange),
				output.FormatChangePercent(snap.DailyChangePercent))
			return nil
		},
	}
}

func newStocksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stocks",
		Short: "List all tradable stocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			stocks, err := app.Client.GetAllStocks(ctx)
			if err != nil {
				output.Error("Failed to load stocks: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(stocks)
			}

			renderStockTable(output, stocks)
			return nil
		},
	}
}

func newMoversCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movers",
		Short: "Show top gainers and losers",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			gainers, err := app.Client.GetTopGainers(ctx)
			if err != nil {
				output.Error("Failed to load gainers: %v", err)
				return err
			}
			losers, err := app.Client.GetTopLosers(ctx)
			if err != nil {
				output.Error("Failed to load losers: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"gainers": gainers,
					"losers":  losers,
				})
			}

			output.Bold("Top Gainers")
			renderStockTable(output, gainers)
			output.Println()
			output.Bold("Top Losers")
			renderStockTable(output, losers)
			return nil
		},
	}
	return cmd
}

func newMarketCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show market hours and open/closed status",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			hours, err := app.Client.GetMarketHours(ctx)
			if err != nil {
				output.Error("Failed to load market hours: %v", err)
				return err
			}

			clock := trading.NewMarketClock(app.Client)
			open := clock.IsOpen(ctx)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"open_time":  hours.Open,
					"close_time": hours.Close,
					"is_open":    open,
				})
			}

			output.Printf("Market: %s\n", output.MarketStatus(open))
			output.Printf("Hours:  %s - %s\n", hours.Open, hours.Close)
			return nil
		},
	}
}

func renderStockTable(output *Output, stocks []models.Stock) {
	if len(stocks) == 0 {
		output.Dim("No stocks.")
		return
	}

	table := NewTable(output, "SYMBOL", "COMPANY", "PRICE", "CHANGE")
	for _, s := range stocks {
		table.AddRow(
			s.Symbol,
			TruncateString(s.CompanyName, 30),
			FormatUSD(s.Price),
			output.FormatChangePercent(s.ChangePercent()),
		)
	}
	table.Render()
}
