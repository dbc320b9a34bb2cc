package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bodasandeepsai/task-manager/internal/advice"
	"github.com/bodasandeepsai/task-manager/internal/config"
	"github.com/bodasandeepsai/task-manager/internal/events"
	"github.com/bodasandeepsai/task-manager/internal/platform/gemini"
	"github.com/bodasandeepsai/task-manager/internal/platform/postgres"
	"github.com/bodasandeepsai/task-manager/internal/service"
	"github.com/bodasandeepsai/task-manager/internal/service/auth"
	"github.com/bodasandeepsai/task-manager/internal/store"
	"github.com/bodasandeepsai/task-manager/internal/ws"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	advisor          advice.Advisor

	eventEmitter events.EventEmitter
	hub          *ws.Hub
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()
	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewUserStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)

	app.advisor, err = gemini.NewAdvisor(ctx, logger.With("component", "advisor"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI advisor: %w", err)
	}
	logger.Info("AI advisor initialized", "model", cfg.LLM.ModelName)

	emitter := events.NewInMemoryEventEmitter(logger)
	app.eventEmitter = emitter

	// Task mutation events fan out to websocket rooms.
	app.hub = ws.NewHub(logger.With("component", "ws_hub"))
	emitter.RegisterHandler(app.hub)

	app.taskService = service.NewTaskService(app.taskStore, app.userStore, app.eventEmitter, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
