package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

// addProfileCommands adds account profile commands.
func addProfileCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the account profile",
	}

	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileUpdateCmd(app))

	rootCmd.AddCommand(cmd)
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			user, err := app.Client.GetUserProfile(ctx, userID)
			if err != nil {
				output.Error("Failed to load profile: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"user_id":  user.ID,
					"username": user.Username,
					"email":    user.Email,
				})
			}

			output.Printf("Username: %s\n", user.Username)
			output.Printf("Email:    %s\n", user.Email)
			output.Printf("User ID:  %s\n", user.ID)
			return nil
		},
	}
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the account email or password",
		Long: `Update the account email or password. The exchange replaces the whole
profile on every edit, so the current record is fetched first and unchanged
fields are resent as they are.`,
		Example: `  cloudex profile update --email alice@example.com
  cloudex profile update --password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			userID, err := requireUser(app, output)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("email") && !cmd.Flags().Changed("password") {
				output.Warning("Nothing to update.")
				return nil
			}

			user, err := app.Client.GetUserProfile(ctx, userID)
			if err != nil {
				output.Error("Failed to load profile: %v", err)
				return err
			}

			email := user.Email
			if cmd.Flags().Changed("email") {
				email, _ = cmd.Flags().GetString("email")
			}

			password := ""
			if cmd.Flags().Changed("password") {
				password, err = promptLine("New password: ")
				if err != nil {
					return err
				}
			}

			if err := app.Client.EditProfile(ctx, userID, user.Username, email, password); err != nil {
				output.Error("Update failed: %v", err)
				return err
			}

			output.Success("✓ Profile updated")
			return nil
		},
	}

	cmd.Flags().String("email", "", "new email address")
	cmd.Flags().Bool("password", false, "prompt for a new password")

	return cmd
}
