package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasktracker/internal/config"
	"github.com/phrazzld/tasktracker/internal/persistence"
	"github.com/phrazzld/tasktracker/internal/platform/jsonfile"
	"github.com/phrazzld/tasktracker/internal/platform/memory"
	"github.com/phrazzld/tasktracker/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger

	// Storage
	taskStore *memory.TaskStore
	dataFile  *jsonfile.File
	coalescer *persistence.Coalescer

	// Service interfaces
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// The data file is read once here; afterwards it is only written.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	app.dataFile = jsonfile.New(
		cfg.Storage.DataFile,
		jsonfile.Options{AtomicWrite: cfg.Storage.AtomicWrite},
		logger,
	)

	tasks, err := app.dataFile.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load task data file: %w", err)
	}

	app.taskStore = memory.NewTaskStore(logger)
	app.taskStore.Replace(tasks)
	logger.Info("Task store initialized",
		"data_file", app.dataFile.Path(),
		"task_count", len(tasks))

	app.coalescer = persistence.NewCoalescer(app.taskStore, app.dataFile, logger)

	app.taskService, err = service.NewTaskService(app.taskStore, app.coalescer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// shutdownTimeout bounds server shutdown and the final data file write.
func (app *application) shutdownTimeout() time.Duration {
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}

// cleanup waits for any in-flight or pending data file write to finish.
func (app *application) cleanup(ctx context.Context) {
	if app.coalescer != nil {
		if err := app.coalescer.Wait(ctx); err != nil {
			app.logger.Error("Timed out waiting for task data file write", "error", err)
		}
		stats := app.coalescer.Stats()
		app.logger.Info("Persistence statistics",
			"writes_started", stats.WritesStarted,
			"writes_failed", stats.WritesFailed,
			"flushes_coalesced", stats.FlushesCoalesced)
	}

	app.logger.Info("Application shutdown completed")
}
