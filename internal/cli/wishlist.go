package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/trading"
)

// addWishlistCommands adds wishlist commands.
func addWishlistCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the stock wishlist",
	}

	cmd.AddCommand(newWishlistShowCmd(app))
	cmd.AddCommand(newWishlistToggleCmd(app))

	rootCmd.AddCommand(cmd)
}

func newWishlistShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			wishlist := trading.NewWishlist(app.Client, app.Logger)
			entries, err := wishlist.Load(ctx, userID)
			if err != nil {
				output.Error("Failed to load wishlist: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}

			if len(entries) == 0 {
				output.Dim("Wishlist is empty.")
				return nil
			}

			table := NewTable(output, "SYMBOL", "COMPANY", "PRICE")
			for _, e := range entries {
				table.AddRow(e.Symbol, TruncateString(e.CompanyName, 30), FormatUSD(e.Price))
			}
			table.Render()
			return nil
		},
	}
}

func newWishlistToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <symbol>",
		Short: "Add or remove a stock from the wishlist",
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

			wishlist := trading.NewWishlist(app.Client, app.Logger)
			if _, err := wishlist.Load(ctx, userID); err != nil {
				output.Error("Failed to load wishlist: %v", err)
				return err
			}

			added, err := wishlist.Toggle(ctx, userID, stockID)
			if err != nil {
				output.Error("Toggle failed: %v", err)
				return err
			}

			if added {
				output.Success("✓ Added %s to wishlist", symbol)
			} else {
				output.Success("✓ Removed %s from wishlist", symbol)
			}
			return nil
		},
	}
}
