// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/adapters/git"
	"github.com/xvierd/pomo-cli/internal/adapters/notification"
	"github.com/xvierd/pomo-cli/internal/adapters/schedule"
	"github.com/xvierd/pomo-cli/internal/adapters/storage"
	"github.com/xvierd/pomo-cli/internal/adapters/tui"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/engine"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dbPath string
)

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	store    *storage.Store
	notifier *notification.Notifier
	engine   *engine.Engine
}

// app holds all initialized dependencies. Populated by
// initializeServices() and accessible to all commands.
var app appDeps

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "A pomodoro timer for your terminal",
	Long: `pomo is a terminal pomodoro timer: alternating focus and break
intervals with session counting, a trailing 7-day ledger, and streaks.

Run "pomo" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(app.engine, app.config)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.pomo/pomo.db)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")
}

// initializeServices sets up the store, notifier, and session engine.
func initializeServices() error {
	appCfg, err := config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appCfg = config.DefaultConfig()
		if home, herr := os.UserHomeDir(); herr == nil {
			appCfg.Storage.DataDir = filepath.Join(home, ".pomo")
		}
	}
	app.config = appCfg

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	app.store = store

	app.notifier = notification.New(&app.config.Notifications)
	app.engine = engine.New(store, store.Sessions(), schedule.NewTicker(), app.notifier, git.NewDetector())

	return nil
}

// cleanupServices closes resources opened during initialization.
func cleanupServices() error {
	if app.store != nil {
		return app.store.Close()
	}
	return nil
}
