package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidFilters is returned when client-supplied search filters
	// violate an invariant (e.g. min_value > max_value, malformed date).
	// It is often wrapped with a more specific message.
	ErrInvalidFilters = errors.New("invalid search filters")

	// ErrInvalidScope is returned when a search scope is not one of
	// ACTIVE, ARCHIVED or ALL.
	ErrInvalidScope = errors.New("invalid search scope")

	// ErrInvalidSortColumn is returned when a sort column is not in the
	// supported set.
	ErrInvalidSortColumn = errors.New("invalid sort column")

	// ErrInvalidSortOrder is returned when a sort order is neither ASC
	// nor DESC.
	ErrInvalidSortOrder = errors.New("invalid sort order")

	// ErrInvalidTaskStatus is returned when a task status string does not
	// name a known status.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTransition is returned when a task status change is not
	// permitted by the task state machine.
	ErrInvalidTransition = errors.New("invalid task status transition")

	// ErrEmptyTaskID is returned when a task is created without an ID.
	ErrEmptyTaskID = errors.New("task ID cannot be empty")

	// ErrEmptyTaskType is returned when a task is created without a type.
	ErrEmptyTaskType = errors.New("task type cannot be empty")
)
