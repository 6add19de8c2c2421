// Package main implements the casebook CLI, a terminal client for the
// practice's case-management REST backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/config"
	"github.com/fyrsmithlabs/casebook/internal/logging"
)

var (
	// configPath overrides the default config file location
	configPath string
	// serverURL overrides the configured backend URL
	serverURL string
	// version information
	version = "dev"

	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "casebook",
	Short: "Case management client for a mediation practice",
	Long: `casebook is a command-line client for the practice's case-management
backend. It covers case intake, MIAM and joint session capture, the
calendar, the progress board, to-dos, payment tracking, and data export.

The backend URL and bearer token come from ~/.config/casebook/config.yaml
or CASEBOOK_* environment variables.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/casebook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend URL (overrides config)")

	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(appointmentsCmd)
	rootCmd.AddCommand(todosCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup loads configuration once and wires the logger and backend client
// for the invoked command.
func setup() error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if serverURL != "" {
		cfg.API.BaseURL = serverURL
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	client, err = api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token.Value(),
		Timeout: cfg.API.Timeout.Duration(),
	}, logger)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}
	return nil
}
