package main

import (
	"fmt"
	"os"

	"expenselens/pkg/config"
	"expenselens/pkg/logger"
	"expenselens/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
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

	if err := postgres.RunMigrations(cfg.Database.URL); err != nil {
		appLogger.Fatal("Migrations failed", zap.Error(err))
	}

	appLogger.Info("Migrations applied")
}
