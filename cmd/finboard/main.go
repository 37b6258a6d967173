package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finboard/internal/api"
	"finboard/internal/api/handlers"
	"finboard/internal/repository"
	"finboard/internal/seed"
	"finboard/internal/service"
	"finboard/pkg/auth"
	"finboard/pkg/config"
	"finboard/pkg/logger"
	"finboard/pkg/postgres"

	"go.uber.org/zap"
)

// @title Finboard API
// @version 1.0
// @description Personal finance dashboard: expense and income queries, spending analysis, budgets and an assistant chat.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finboard",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("chat", cfg.Chat.Provider),
	)

	ctx := context.Background()

	stores, closeStores, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStores()

	if cfg.Storage.SeedSample {
		if _, err := seed.Run(ctx, stores, appLogger.Named("seed")); err != nil {
			appLogger.Fatal("Failed to load sample data", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(stores.Users, jwtManager, appLogger.Named("auth"))
	expenseService := service.NewExpenseService(stores.Expenses, appLogger.Named("expenses"))
	incomeService := service.NewIncomeService(stores.Income, appLogger.Named("income"))
	analyticsService := service.NewAnalyticsService(stores.Expenses, stores.Income, appLogger.Named("analytics"))

	rules := service.NewDefaultRuleResponder()
	chatService := service.NewChatService(rules, nil, stores.Expenses, stores.Income, appLogger.Named("chat"))
	if cfg.Chat.Provider == config.ChatProviderGigaChat {
		giga, err := service.NewGigaChatResponder(ctx, &cfg.GigaChat, appLogger.Named("gigachat"))
		if err != nil {
			appLogger.Fatal("Failed to initialize GigaChat", zap.Error(err))
		}
		defer giga.Close()
		chatService = service.NewChatService(giga, rules, stores.Expenses, stores.Income, appLogger.Named("chat"))
	}

	// Initialize handlers
	h := api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Expenses:  handlers.NewExpenseHandler(expenseService, appLogger),
		Income:    handlers.NewIncomeHandler(incomeService, appLogger),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, appLogger),
		Chat:      handlers.NewChatHandler(chatService, appLogger),
	}

	app := api.SetupRouter(h, &cfg.Server, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// openStores builds the record suppliers for the configured driver.
func openStores(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (seed.Stores, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		appLogger.Warn("Using in-memory storage, data is lost on restart")
		return seed.Stores{
			Users:    repository.NewMemoryUserRepository(),
			Expenses: repository.NewMemoryExpenseRepository(),
			Income:   repository.NewMemoryIncomeRepository(),
		}, func() {}, nil
	}

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
			return seed.Stores{}, nil, err
		}
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		return seed.Stores{}, nil, err
	}

	return seed.Stores{
		Users:    repository.NewUserRepository(db, appLogger),
		Expenses: repository.NewExpenseRepository(db, appLogger),
		Income:   repository.NewIncomeRepository(db, appLogger),
	}, db.Close, nil
}
