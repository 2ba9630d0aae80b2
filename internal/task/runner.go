package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// RunnerConfig holds configuration for the task runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers drain the queue.
	WorkerCount int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{WorkerCount: 2}
}

// Runner drives accepted tasks through their lifecycle: a pool of workers
// consumes task IDs from the queue, resolves the type-specific handler and
// records the terminal status in the registry. A handler failure or panic
// fails that one task; it never crashes the worker loop or affects other
// tasks. Processing order across distinct tasks is not guaranteed.
type Runner struct {
	registry *Registry
	queue    *Queue
	handlers *HandlerRegistry

	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	logger      *slog.Logger
}

// NewRunner creates a task runner over the given registry, queue and
// handler table.
func NewRunner(
	registry *Registry,
	queue *Queue,
	handlers *HandlerRegistry,
	cfg RunnerConfig,
	logger *slog.Logger,
) *Runner {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", cfg.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		registry:    registry,
		queue:       queue,
		handlers:    handlers,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With("component", "task_runner"),
	}
}

// Submit registers a new task and queues it for processing. Tasks of an
// unregistered type are rejected up front with ErrUnknownTaskType. A
// duplicate task ID is rejected with ErrDuplicateTaskID and leaves the
// stored task untouched. When the queue is full the registration is
// rolled back, so the caller may retry with the same ID later.
func (r *Runner) Submit(ctx context.Context, t *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := r.handlers.Resolve(t.Type); err != nil {
		return err
	}

	if err := r.registry.Create(t); err != nil {
		return err
	}

	if err := r.queue.Enqueue(t); err != nil {
		r.registry.remove(t.ID)
		return fmt.Errorf("failed to enqueue task %s: %w", t.ID, err)
	}
	return nil
}

// Start launches the worker pool.
func (r *Runner) Start() {
	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("task runner started", "worker_count", r.workerCount)
}

// Stop shuts the runner down: no further submissions are accepted,
// in-flight handlers are cancelled and all workers are awaited.
func (r *Runner) Stop() {
	r.cancel()
	r.queue.Close()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

// worker consumes task IDs from the queue until shutdown.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	log := r.logger.With("worker_id", id)
	log.Debug("starting worker")

	for {
		select {
		case <-r.ctx.Done():
			log.Debug("stopping worker")
			return

		case taskID, ok := <-r.queue.Chan():
			if !ok {
				log.Debug("task queue closed, stopping worker")
				return
			}
			r.process(taskID, log)
		}
	}
}

// process drives one task from pending through running to a terminal
// state. Per-task transitions are strictly sequential; no state is ever
// skipped.
func (r *Runner) process(taskID string, log *slog.Logger) {
	t, err := r.registry.Get(taskID)
	if err != nil {
		log.Error("queued task missing from registry", "task_id", taskID, "error", err)
		return
	}

	log = log.With("task_id", t.ID, "task_type", t.Type)

	if err := r.registry.Transition(t.ID, domain.TaskStatusRunning, nil, ""); err != nil {
		log.Error("failed to transition task to running", "error", err)
		return
	}

	log.Info("processing task")

	result, err := r.execute(t)
	if err != nil {
		log.Error("task execution failed", "error", err)
		if terr := r.registry.Transition(t.ID, domain.TaskStatusFailed, nil, err.Error()); terr != nil {
			log.Error("failed to record task failure", "error", terr)
		}
		return
	}

	log.Info("task completed")
	if terr := r.registry.Transition(t.ID, domain.TaskStatusCompleted, result, ""); terr != nil {
		log.Error("failed to record task completion", "error", terr)
	}
}

// execute resolves and runs the task's handler, converting a handler panic
// into an ordinary failure so one bad task never takes down a worker.
func (r *Runner) execute(t *domain.Task) (result map[string]domain.ParamValue, err error) {
	handler, err := r.handlers.Resolve(t.Type)
	if err != nil {
		return nil, err
	}

	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("handler panicked: %v", p)
		}
	}()

	return handler(r.ctx, t)
}
