package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// ErrUnknownTaskType is returned when a task names a type no handler is
// registered for. The task fails instead of hanging.
var ErrUnknownTaskType = errors.New("unknown task type")

// HandlerFunc executes one task. The returned map becomes the task's result
// payload on success; a returned error fails the task with the error text.
// Handlers must honor ctx cancellation on blocking work.
type HandlerFunc func(ctx context.Context, t *domain.Task) (map[string]domain.ParamValue, error)

// HandlerRegistry maps task types to their handlers: an explicit table
// rather than dynamic dispatch, so an unregistered type is a well-defined
// failure.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewHandlerRegistry creates an empty handler table.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]HandlerFunc),
	}
}

// Register binds a handler to a task type, replacing any previous binding.
func (hr *HandlerRegistry) Register(taskType string, h HandlerFunc) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	hr.handlers[taskType] = h
}

// Resolve returns the handler for a task type, or ErrUnknownTaskType.
func (hr *HandlerRegistry) Resolve(taskType string) (HandlerFunc, error) {
	hr.mu.RLock()
	defer hr.mu.RUnlock()

	h, ok := hr.handlers[taskType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, taskType)
	}
	return h, nil
}

// Types returns the registered task types.
func (hr *HandlerRegistry) Types() []string {
	hr.mu.RLock()
	defer hr.mu.RUnlock()

	types := make([]string, 0, len(hr.handlers))
	for t := range hr.handlers {
		types = append(types, t)
	}
	return types
}
