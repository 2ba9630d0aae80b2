package main

import (
	"fmt"
	"log/slog"

	"github.com/tedsearch/ted-search-api/internal/config"
	"github.com/tedsearch/ted-search-api/internal/platform/logger"
	"github.com/tedsearch/ted-search-api/internal/platform/ted"
	"github.com/tedsearch/ted-search-api/internal/service"
	"github.com/tedsearch/ted-search-api/internal/task"
)

// application holds the fully wired dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	searchService *service.SearchService

	taskRegistry   *task.Registry
	taskQueue      *task.Queue
	taskRunner     *task.Runner
	taskAggregator *task.Aggregator
}

// newApplication loads configuration and wires every component: the TED
// catalog client, the search service and the asynchronous task subsystem
// with its handler table. The task runner is created but not started;
// the caller owns its lifecycle.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"ted_base_url", cfg.TED.BaseURL,
		"worker_count", cfg.Worker.Count)

	catalog := ted.NewClient(cfg.TED, log)
	searchService := service.NewSearchService(catalog, log)

	registry := task.NewRegistry()
	queue := task.NewQueue(cfg.Worker.QueueSize, log)

	handlers := task.NewHandlerRegistry()
	handlers.Register(task.TaskTypePDFExtract, task.NewPDFExtractHandler(catalog, log))

	runner := task.NewRunner(registry, queue, handlers, task.RunnerConfig{
		WorkerCount: cfg.Worker.Count,
	}, log)

	log.Debug("task handlers registered", "types", handlers.Types())

	return &application{
		config:         cfg,
		logger:         log,
		searchService:  searchService,
		taskRegistry:   registry,
		taskQueue:      queue,
		taskRunner:     runner,
		taskAggregator: task.NewAggregator(registry),
	}, nil
}

// cleanup stops the background task runner, waiting for in-flight
// handlers to finish or be cancelled.
func (app *application) cleanup() {
	app.taskRunner.Stop()
}
