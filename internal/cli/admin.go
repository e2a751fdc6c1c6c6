package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/errors"
	"cloudex-trader/internal/models"
	"cloudex-trader/internal/trading"
)

// addAdminCommands adds administrator commands. The exchange enforces the
// role server-side; the local check only produces a clearer error.
func addAdminCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator operations",
	}

	cmd.AddCommand(newAdminCreateStockCmd(app))
	cmd.AddCommand(newAdminUpdateStockCmd(app))
	cmd.AddCommand(newAdminDeleteStockCmd(app))
	cmd.AddCommand(newAdminDeleteUserCmd(app))

	rootCmd.AddCommand(cmd)
}

// requireAdmin checks the cached role before issuing an admin request.
func requireAdmin(app *App, output *Output) error {
	if app.Identity.CurrentRole() != models.RoleAdmin {
		output.Error("This command requires an administrator account.")
		return fmt.Errorf("not an administrator")
	}
	return nil
}

func newAdminCreateStockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create-stock <symbol> <company-name> <price>",
		Short:   "Create a new tradable stock",
		Example: `  cloudex admin create-stock ACME "Acme Corp" 42.50`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := requireAdmin(app, output); err != nil {
				return err
			}

			symbol := strings.ToUpper(strings.TrimSpace(args[0]))
			if len(symbol) == 0 || len(symbol) > models.MaxSymbolLength {
				output.Error("Symbol must be 1-%d letters.", models.MaxSymbolLength)
				return fmt.Errorf("invalid symbol")
			}

			price, err := parseAmount(args[2])
			if err != nil {
				output.Error("Invalid price: %s", args[2])
				return err
			}

			description, _ := cmd.Flags().GetString("description")

			stockID, err := app.Client.CreateStock(ctx, args[1], symbol, description, price)
			if err != nil {
				output.Error("Create failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"stock_id": stockID, "symbol": symbol})
			}

			output.Success("✓ Created %s", symbol)
			output.Dim("Stock ID: %s", stockID)
			return nil
		},
	}

	cmd.Flags().String("description", "", "company description")

	return cmd
}

func newAdminUpdateStockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-stock <symbol>",
		Short: "Update a stock's name or description",
		Long: `Update a stock's company name or description. The exchange replaces
both fields on every edit, so the current value is fetched and resent for
whichever field is not being changed. Price and tradability are managed by
the exchange and cannot be edited.`,
		Example: `  cloudex admin update-stock ACME --name "Acme Corporation"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := requireAdmin(app, output); err != nil {
				return err
			}

			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("description") {
				output.Warning("Nothing to update.")
				return nil
			}

			symbol := strings.ToUpper(strings.TrimSpace(args[0]))
			stock, err := findStockBySymbol(ctx, app, symbol)
			if err != nil {
				output.Error("Lookup failed: %v", err)
				return err
			}

			companyName := stock.CompanyName
			description := stock.Description
			if cmd.Flags().Changed("name") {
				companyName, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("description") {
				description, _ = cmd.Flags().GetString("description")
			}

			if err := app.Client.UpdateStock(ctx, stock.ID, companyName, description); err != nil {
				output.Error("Update failed: %v", err)
				return err
			}

			output.Success("✓ Updated %s", symbol)
			return nil
		},
	}

	cmd.Flags().String("name", "", "new company name")
	cmd.Flags().String("description", "", "new description")

	return cmd
}

// findStockBySymbol looks up the full stock record, including the fields an
// edit must resend unchanged.
func findStockBySymbol(ctx context.Context, app *App, symbol string) (*models.Stock, error) {
	stocks, err := app.Client.GetAllStocks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stocks {
		if stocks[i].Symbol == symbol {
			return &stocks[i], nil
		}
	}
	return nil, errors.ErrSymbolNotFound
}

func newAdminDeleteStockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-stock <symbol>",
		Short: "Delete a stock from the exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := requireAdmin(app, output); err != nil {
				return err
			}

			resolver := trading.NewResolver(app.Client, app.Logger)
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))
			stockID, _, err := resolver.Resolve(ctx, symbol)
			if err != nil {
				output.Error("Lookup failed: %v", err)
				return err
			}

			if err := app.Client.DeleteStock(ctx, stockID); err != nil {
				output.Error("Delete failed: %v", err)
				return err
			}

			output.Success("✓ Deleted %s", symbol)
			return nil
		},
	}
}

func newAdminDeleteUserCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := requireAdmin(app, output); err != nil {
				return err
			}

			if err := app.Client.DeleteUser(ctx, args[0]); err != nil {
				output.Error("Delete failed: %v", err)
				return err
			}

			output.Success("✓ Deleted user %s", args[0])
			return nil
		},
	}
}
