package domain

import (
	"fmt"
	"time"
)

// TaskStatus represents the current state of a background task.
type TaskStatus string

// Possible task status values.
//
// Valid status graph:
//
//	pending ──► running ──► completed
//	                 │
//	                 └────► failed
//
// completed and failed are terminal states.
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// validTaskTransitions lists every allowed (from -> to) pair. Terminal
// states have no outgoing transitions, and nothing transitions back into
// pending.
var validTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending: {TaskStatusRunning},
	TaskStatusRunning: {TaskStatusCompleted, TaskStatusFailed},
}

// ParseTaskStatus converts a raw string to a TaskStatus, returning
// ErrInvalidTaskStatus for unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	switch st {
	case TaskStatusPending, TaskStatusRunning, TaskStatusCompleted, TaskStatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
}

// IsTaskTransitionAllowed returns true when moving from -> to is permitted
// by the task state machine.
func IsTaskTransitionAllowed(from, to TaskStatus) bool {
	allowed, ok := validTaskTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Task represents one unit of asynchronous post-processing work submitted
// against one or more notices. The ID is caller-supplied and must be unique
// within the registry's lifetime. Tasks are owned exclusively by the task
// registry and mutated only through its Transition method.
type Task struct {
	ID          string                `json:"task_id"`
	Type        string                `json:"task_type"`
	NoticeIDs   []string              `json:"notice_ids,omitempty"`
	Parameters  map[string]ParamValue `json:"parameters,omitempty"`
	Status      TaskStatus            `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
	Result      map[string]ParamValue `json:"result,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// NewTask creates a pending Task with the given caller-supplied ID, type,
// target notices and parameters. Returns an error if validation fails.
func NewTask(id, taskType string, noticeIDs []string, params map[string]ParamValue) (*Task, error) {
	t := &Task{
		ID:         id,
		Type:       taskType,
		NoticeIDs:  append([]string(nil), noticeIDs...),
		Parameters: CopyParams(params),
		Status:     TaskStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the task has an ID, a type and a known status.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyTaskID
	}
	if t.Type == "" {
		return ErrEmptyTaskType
	}
	if _, err := ParseTaskStatus(string(t.Status)); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy of the task. The registry hands out and accepts
// only clones so callers can never mutate registry-owned state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	cp.NoticeIDs = append([]string(nil), t.NoticeIDs...)
	cp.Parameters = CopyParams(t.Parameters)
	cp.Result = CopyParams(t.Result)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}
