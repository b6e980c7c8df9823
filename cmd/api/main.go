package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"finfacil/internal/app"
	"finfacil/internal/config"
	"finfacil/internal/database"
	"finfacil/internal/logger"
	"finfacil/internal/server"
	"finfacil/internal/services"
	"finfacil/internal/store"
)

// @title           FinFacil Goals API
// @version         1.0
// @description     Goal ledger and progress tracking for FinFacil: savings pots, spending limits, pacing and notifications.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx := context.Background()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	a := app.New(ctx, store.NewGorm(db), services.NewAuditService(db))
	defer a.Close()

	if appConfig.SeedOnStart {
		seeded, err := a.SeedIfEmpty(ctx, appConfig.SeedFile, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
		if seeded {
			log.Info("Empty store seeded with demo data")
		}
	}

	router := server.NewRouter(server.Deps{
		Goals:         a.GoalService,
		Notifications: a.NotificationService,
		Events:        a.Bus,
		EventBuffer:   appConfig.EventBuffer,
		APIKey:        appConfig.APIKey,
	})

	log.Infof("Starting FinFacil backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
