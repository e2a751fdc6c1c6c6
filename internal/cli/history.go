package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/models"
	"cloudex-trader/internal/store"
)

// addHistoryCommands adds the local journal commands.
func addHistoryCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the local order and snapshot journal",
		Long: `Browse the local journal. The journal records orders this client
submitted successfully and portfolio snapshots it rendered, so history
works even when the exchange is unreachable.`,
	}

	cmd.AddCommand(newHistoryOrdersCmd(app))
	cmd.AddCommand(newHistorySnapshotsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newHistoryOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show journaled orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Local journal is unavailable.")
				return fmt.Errorf("store not initialized")
			}

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			side, _ := cmd.Flags().GetString("side")
			limit, _ := cmd.Flags().GetInt("limit")

			filter := store.OrderFilter{
				UserID: userID,
				Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
				Side:   models.OrderSide(strings.ToUpper(side)),
				Limit:  limit,
			}

			records, err := app.Store.GetOrders(ctx, filter)
			if err != nil {
				output.Error("Failed to read journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Dim("No journaled orders.")
				return nil
			}

			table := NewTable(output, "DATE", "SYMBOL", "SIDE", "SHARES", "PRICE", "FEE", "TX")
			for _, r := range records {
				table.AddRow(
					FormatDateTime(r.Timestamp),
					r.Symbol,
					FormatSide(string(r.Side)),
					r.Shares,
					r.PricePerShare,
					r.FeeAmount,
					TruncateString(r.TransactionID, 12),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("side", "", "filter by side (BUY or SELL)")
	cmd.Flags().Int("limit", 20, "show at most N orders")

	return cmd
}

func newHistorySnapshotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Show journaled portfolio snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Local journal is unavailable.")
				return fmt.Errorf("store not initialized")
			}

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")

			records, err := app.Store.GetSnapshots(ctx, store.SnapshotFilter{
				UserID: userID,
				Limit:  limit,
			})
			if err != nil {
				output.Error("Failed to read journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Dim("No journaled snapshots.")
				return nil
			}

			table := NewTable(output, "DATE", "CASH", "HOLDINGS", "TOTAL", "CHANGE")
			for _, r := range records {
				table.AddRow(
					FormatDateTime(r.Timestamp),
					FormatUSD(r.Snapshot.CashBalance),
					FormatUSD(r.Snapshot.HoldingsValue),
					FormatUSD(r.Snapshot.TotalValue),
					output.FormatChangeUSD(r.Snapshot.DailyChange),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "show at most N snapshots")

	return cmd
}
