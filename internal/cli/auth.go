package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudex-trader/internal/models"
)

// addAuthCommands adds authentication commands.
func addAuthCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLoginCmd(app))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newRegisterCmd(app))
	rootCmd.AddCommand(newWhoamiCmd(app))
}

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the exchange",
		Long: `Login to the CloudEx exchange.

Sign in with either a username or an email address. The password is read
from the terminal when not supplied with --password.`,
		Example: `  cloudex login --username alice
  cloudex login --email alice@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if username == "" && email == "" {
				output.Error("Provide --username or --email.")
				return fmt.Errorf("missing login identifier")
			}

			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			user, err := app.Client.Login(ctx, username, email, password)
			if err != nil {
				output.Error("Login failed: %v", err)
				return err
			}

			// The login response carries no role; it lives behind its own
			// endpoint and must be fetched before the session is saved.
			if role, err := app.Client.GetRole(ctx, user.ID); err == nil {
				user.Role = role
			} else {
				app.Logger.Warn().Err(err).Msg("role lookup failed")
				user.Role = models.RoleUser
			}

			if err := app.Identity.Save(user); err != nil {
				output.Error("Failed to save session: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"user_id":  user.ID,
					"username": user.Username,
					"role":     string(user.Role),
				})
			}

			output.Success("✓ Signed in as %s", user.Username)
			if user.Role != "" {
				output.Dim("Role: %s", user.Role)
			}
			return nil
		},
	}

	cmd.Flags().String("username", "", "account username")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted if omitted)")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if userID, err := app.Identity.CurrentUserID(); err == nil {
				if err := app.Client.Logout(ctx, userID); err != nil {
					app.Logger.Warn().Err(err).Msg("remote logout failed")
				}
			}

			if err := app.Identity.Clear(); err != nil {
				output.Error("Failed to clear session: %v", err)
				return err
			}

			output.Success("✓ Signed out")
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create a new account",
		Example: `  cloudex register --username alice --email alice@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if username == "" || email == "" {
				output.Error("Both --username and --email are required.")
				return fmt.Errorf("missing registration fields")
			}

			if password == "" {
				var err error
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			if err := app.Client.Register(ctx, username, email, password); err != nil {
				output.Error("Registration failed: %v", err)
				return err
			}

			output.Success("✓ Account created. Run 'cloudex login' to sign in.")
			return nil
		},
	}

	cmd.Flags().String("username", "", "account username")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted if omitted)")

	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if !app.Identity.IsAuthenticated() {
				output.Warning("Not signed in. Run 'cloudex login'.")
				return nil
			}

			userID, err := app.Identity.CurrentUserID()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// The server is the authority on roles; fall back to the
			// cached session role when it is unreachable.
			role := app.Identity.CurrentRole()
			if remote, err := app.Client.GetRole(ctx, userID); err == nil {
				role = remote
			} else {
				app.Logger.Warn().Err(err).Msg("role refresh failed")
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{
					"user_id":  userID,
					"username": app.Identity.CurrentUsername(),
					"role":     string(role),
				})
			}

			output.Printf("User:     %s\n", app.Identity.CurrentUsername())
			output.Printf("User ID:  %s\n", userID)
			output.Printf("Role:     %s\n", role)
			return nil
		},
	}
}

// promptLine reads one line from stdin after printing a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// requireUser returns the signed-in user id or a friendly error.
func requireUser(app *App, output *Output) (string, error) {
	userID, err := app.Identity.CurrentUserID()
	if err != nil {
		output.Error("Not signed in. Run 'cloudex login' first.")
		return "", err
	}
	return userID, nil
}
