package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finfacil/internal/app"
	"finfacil/internal/config"
	"finfacil/internal/database"
	"finfacil/internal/logger"
	"finfacil/internal/services"
	"finfacil/internal/store"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "finfacil",
	Short: "FinFacil goals CLI",
	Long:  "Inspect and seed the FinFacil goal ledger: goals, progress and notifications.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.Init(os.Getenv("ENV"))
		} else {
			logger.Init("silent")
		}
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log database and service activity")
}

// openApp connects to the configured database and loads the services.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := dbManager.RunMigrations(); err != nil {
		dbManager.Close()
		return nil, nil, err
	}

	db := dbManager.DB()
	a := app.New(ctx, store.NewGorm(db), services.NewAuditService(db))
	closeFn := func() {
		a.Close()
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnw("failed to close database", "error", err)
		}
	}
	return a, closeFn, nil
}
