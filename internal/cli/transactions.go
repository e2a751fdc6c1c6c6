package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// addTransactionCommands adds the server-side transaction ledger command.
func addTransactionCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTransactionsCmd(app))
}

func newTransactionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Show the transaction history from the exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			transactions, err := app.Client.GetTransactions(ctx, userID)
			if err != nil {
				output.Error("Failed to load transactions: %v", err)
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			if limit > 0 && len(transactions) > limit {
				transactions = transactions[:limit]
			}

			if output.IsJSON() {
				return output.JSON(transactions)
			}

			if len(transactions) == 0 {
				output.Dim("No transactions.")
				return nil
			}

			table := NewTable(output, "DATE", "SYMBOL", "SIDE", "SHARES", "PRICE", "FEE")
			for _, t := range transactions {
				table.AddRow(
					FormatDateTime(t.ExecutedAt),
					t.Symbol,
					FormatSide(string(t.Side)),
					FormatShares(t.Shares),
					FormatUSD(t.PricePerShare),
					FormatUSD(t.FeeAmount),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "show at most N transactions")

	return cmd
}
