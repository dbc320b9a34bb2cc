// Package main implements the entry point for the task manager API
// server, which provides task CRUD with authentication, realtime task
// notifications over websockets and an AI advice endpoint.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/bodasandeepsai/task-manager/internal/config"
	"github.com/bodasandeepsai/task-manager/internal/platform/logger"
	"github.com/bodasandeepsai/task-manager/internal/platform/postgres"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations and wires the application dependencies.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"env", cfg.Server.Env)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		dbErr := db.Close()
		if dbErr != nil {
			appLogger.Error("error closing database after failed migration", "error", dbErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("database migrations applied")

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		dbErr := db.Close()
		if dbErr != nil {
			appLogger.Error("error closing database after failed init", "error", dbErr)
		}
		return nil, err
	}

	return app, nil
}
