package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"expenselens/internal/api"
	"expenselens/internal/api/handlers"
	"expenselens/internal/repository"
	"expenselens/internal/service"
	"expenselens/pkg/config"
	"expenselens/pkg/logger"
	"expenselens/pkg/postgres"

	"go.uber.org/zap"
)

// @title ExpenseLens API
// @version 1.0
// @description AI-assisted expense ingestion service

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Required secrets are checked here; a misconfigured process never
	// reaches the first request.
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.Logger.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting ExpenseLens service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, cfg.Database.URL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	extractionClient, err := service.NewExtractionClient(ctx, &cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize extraction client", zap.Error(err))
	}
	defer extractionClient.Close()

	ingestService := service.NewIngestService(extractionClient, expenseRepo, &cfg.Ingest, appLogger)

	expenseHandler := handlers.NewExpenseHandler(ingestService, appLogger)

	app := api.SetupRouter(expenseHandler)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
