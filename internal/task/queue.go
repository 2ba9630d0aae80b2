package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// Common errors returned by the Queue.
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// Queue is the buffered in-memory queue between task submission and the
// worker pool. Only task IDs travel through it; the registry stays the
// single owner of task state.
type Queue struct {
	ids    chan string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int, logger *slog.Logger) *Queue {
	return &Queue{
		ids:    make(chan string, size),
		logger: logger,
	}
}

// Enqueue adds a task ID to the queue for processing. Returns ErrQueueFull
// when the buffer is exhausted and ErrQueueClosed after Close.
func (q *Queue) Enqueue(t *domain.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ids <- t.ID:
		q.logger.Debug("task enqueued",
			"task_id", t.ID,
			"task_type", t.Type,
			"queue_len", len(q.ids),
			"queue_cap", cap(q.ids))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.ids))
	}
}

// Close closes the queue, preventing further submission. Workers drain
// whatever is still buffered.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ids)
		q.logger.Info("task queue closed")
	}
}

// Chan returns the read side of the queue for worker consumption.
func (q *Queue) Chan() <-chan string {
	return q.ids
}
