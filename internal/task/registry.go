package task

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// Errors returned by the Registry.
var (
	// ErrDuplicateTaskID is returned when a task is created under an ID
	// that already exists. The stored task is left untouched.
	ErrDuplicateTaskID = errors.New("task ID already exists")

	// ErrTaskNotFound is returned when no task exists under the given ID.
	ErrTaskNotFound = errors.New("task not found")
)

// Registry is the in-memory store of task records. It owns every task it
// holds: callers only ever see copies, and all read-modify-write sequences
// on a task run under one lock, so transitions on a given task are
// linearized. The registry is injected into its consumers rather than
// living in package state.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]*domain.Task),
	}
}

// Create stores a new task under its caller-supplied ID. The stored copy
// always starts pending with a fresh creation timestamp. A second Create
// with the same ID is rejected with ErrDuplicateTaskID and does not modify
// the stored task.
func (r *Registry) Create(t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTaskID, t.ID)
	}

	stored := t.Clone()
	stored.Status = domain.TaskStatusPending
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.CompletedAt = nil
	stored.Result = nil
	stored.Error = ""

	r.tasks[t.ID] = stored
	return nil
}

// Get returns a copy of the task stored under the given ID, or
// ErrTaskNotFound.
func (r *Registry) Get(id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t.Clone(), nil
}

// Transition moves a task to a new status, recording a result payload on
// completion or an error message on failure. Illegal moves (anything
// outside pending->running->completed|failed) are rejected with
// domain.ErrInvalidTransition, so a terminal task can never revert.
func (r *Registry) Transition(
	id string,
	status domain.TaskStatus,
	result map[string]domain.ParamValue,
	errMsg string,
) error {
	if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if !domain.IsTaskTransitionAllowed(t.Status, status) {
		return fmt.Errorf("%w: %s -> %s (task %s)",
			domain.ErrInvalidTransition, t.Status, status, id)
	}

	t.Status = status
	if status.IsTerminal() {
		now := time.Now().UTC()
		t.CompletedAt = &now
		t.Result = domain.CopyParams(result)
		t.Error = errMsg
	}
	return nil
}

// Snapshot returns copies of all known tasks. Each task's status is read
// exactly once under the lock, giving a consistent point-in-time view for
// the statistics aggregator.
func (r *Registry) Snapshot() []*domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// remove deletes a task. Used only by the runner to compensate a Create
// whose enqueue failed, so a rejected submission does not burn the ID.
func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
}

// Len returns the number of known tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
