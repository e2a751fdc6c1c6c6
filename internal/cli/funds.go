package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// addFundsCommands adds account funds commands.
func addFundsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBalanceCmd(app))
	rootCmd.AddCommand(newDepositCmd(app))
	rootCmd.AddCommand(newWithdrawCmd(app))
}

func newBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show available cash balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			balance, err := app.Client.GetUserBalance(ctx, userID)
			if err != nil {
				output.Error("Failed to load balance: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"balance": balance.String()})
			}

			output.Printf("Balance: %s\n", FormatUSD(balance))
			return nil
		},
	}
}

func newDepositCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "deposit <amount>",
		Short:   "Add funds to the account",
		Example: `  cloudex deposit 500`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[0])
			if err != nil {
				output.Error("Invalid amount: %s", args[0])
				return err
			}

			newBalance, err := app.Client.AddFunds(ctx, userID, amount)
			if err != nil {
				output.Error("Deposit failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"deposited":   amount.String(),
					"new_balance": newBalance.String(),
				})
			}

			output.Success("✓ Deposited %s", FormatUSD(amount))
			output.Printf("New balance: %s\n", FormatUSD(newBalance))
			return nil
		},
	}
}

func newWithdrawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "withdraw <amount>",
		Short:   "Withdraw funds from the account",
		Example: `  cloudex withdraw 250`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[0])
			if err != nil {
				output.Error("Invalid amount: %s", args[0])
				return err
			}

			balance, err := app.Client.GetUserBalance(ctx, userID)
			if err != nil {
				output.Error("Failed to load balance: %v", err)
				return err
			}
			if amount.GreaterThan(balance) {
				output.Error("Insufficient funds. Balance is %s.", FormatUSD(balance))
				return fmt.Errorf("withdrawal exceeds balance")
			}

			if err := app.Client.WithdrawFunds(ctx, userID, amount); err != nil {
				output.Error("Withdrawal failed: %v", err)
				return err
			}

			output.Success("✓ Withdrew %s", FormatUSD(amount))
			return nil
		},
	}
}

// parseAmount parses a positive dollar amount from an argument.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}
