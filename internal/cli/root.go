package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cloudex-trader/internal/api"
	"cloudex-trader/internal/config"
	"cloudex-trader/internal/identity"
	"cloudex-trader/internal/logging"
	"cloudex-trader/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-30"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Client   api.Client
	Identity *identity.FileContext
	Store    store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Client:   api.NewCloudExClient(cfg.API.BaseURL, cfg.API.Timeout(), logger),
		Identity: identity.NewFileContext(config.SessionPath("")),
	}

	dbPath := config.DefaultConfigDir() + "/cloudex.db"
	dataStore, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, history will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "cloudex",
		Short: "CloudEx Trader - stock trading CLI",
		Long: `CloudEx Trader is a command-line client for the CloudEx exchange.

It supports symbol lookup, buying and selling stocks, portfolio valuation,
funds management, and a per-user wishlist.

Use 'cloudex help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/cloudex-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addAuthCommands(rootCmd, app)
	addTradingCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addFundsCommands(rootCmd, app)
	addProfileCommands(rootCmd, app)
	addWishlistCommands(rootCmd, app)
	addTransactionCommands(rootCmd, app)
	addHistoryCommands(rootCmd, app)
	addAdminCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("CloudEx Trader v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, app *App) {
	cfg := app.Config

	output.Bold("API Configuration")
	output.Printf("  Base URL:        %s\n", cfg.API.BaseURL)
	output.Printf("  Timeout:         %s\n", cfg.API.Timeout())
	output.Println()

	output.Bold("Trading Configuration")
	output.Printf("  Fee Percent:     %.2f%%\n", cfg.Trading.FeePercent)
	output.Printf("  Suggest Debounce: %s\n", cfg.Trading.SuggestDebounce())
	output.Printf("  Banner TTL:      %s\n", cfg.Trading.BannerTTL())
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  Console:         %v\n", cfg.Logging.Console)
	output.Printf("  File:            %v\n", cfg.Logging.File)
}
