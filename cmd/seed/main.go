package main

import (
	"context"
	"log"

	"finboard/internal/repository"
	"finboard/internal/seed"
	"finboard/pkg/config"
	"finboard/pkg/logger"
	"finboard/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	user, err := seed.Run(ctx, seed.Stores{
		Users:    repository.NewUserRepository(db, appLogger),
		Expenses: repository.NewExpenseRepository(db, appLogger),
		Income:   repository.NewIncomeRepository(db, appLogger),
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}

	appLogger.Info("Seeding completed", zap.String("email", user.Email))
}
