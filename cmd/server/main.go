// Package main implements the entry point for the tasks API server, a small
// REST backend for a to-do list.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// main loads configuration, wires the application and serves HTTP until
// SIGINT or SIGTERM, then drains in-flight requests and closes the database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	os.Exit(run(context.Background(), cfg, appLogger))
}

// run starts the server and blocks until shutdown completes.
// It returns the process exit code.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("db_driver", cfg.Database.Driver))

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", slog.String("error", err.Error()))
		return 1
	}

	serverErrs := app.startHTTPServer()

	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	wait := gfshutdown.GracefulShutdown(ctx, timeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			logger.Info("graceful shutdown initiated")
			return app.shutdown(ctx)
		},
	})

	select {
	case err := <-serverErrs:
		logger.Error("server failed", slog.String("error", err.Error()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if shutdownErr := app.shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("shutdown after server failure", slog.String("error", shutdownErr.Error()))
		}
		return 1
	case code := <-wait:
		logger.Info("server exited", slog.Int("exit_code", code))
		return code
	}
}
