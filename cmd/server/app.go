package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService

	server *http.Server
}

// newApplication opens the database and builds the service graph.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, taskStore, err := setupDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app, err := newApplicationWithStore(cfg, logger, db, taskStore)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApplicationWithStore builds the application around an already opened
// database and task store. db may be nil when the store needs no connection.
func newApplicationWithStore(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	taskStore store.TaskStore,
) (*application, error) {
	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskStore:   taskStore,
		taskService: taskService,
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return app, nil
}

// shutdown drains the HTTP server and then releases the database.
func (app *application) shutdown(ctx context.Context) error {
	var errs []error

	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
		}
	}

	if err := app.cleanup(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		app.logger.Info("server shutdown completed")
	}
	return errors.Join(errs...)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() error {
	if app.db == nil {
		return nil
	}

	app.logger.Info("closing database connection")
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
