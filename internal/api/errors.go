package api

import (
	"errors"
	"net/http"

	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/platform/ted"
	"github.com/tedsearch/ted-search-api/internal/task"
)

// Machine-stable error kinds returned in the error envelope. Clients
// dispatch on these, so they must not change once published.
const (
	KindValidation      = "validation_error"
	KindInvalidQuery    = "invalid_query"
	KindNotFound        = "not_found"
	KindDuplicateTask   = "duplicate_task"
	KindUnknownTaskType = "unknown_task_type"
	KindQueueFull       = "queue_full"
	KindUpstream        = "upstream_unavailable"
	KindInternal        = "internal_error"
)

// MapErrorToStatusCode translates domain, catalog, and task errors into an
// HTTP status code and a machine-stable error kind.
func MapErrorToStatusCode(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFilters),
		errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, domain.ErrInvalidSortColumn),
		errors.Is(err, domain.ErrInvalidSortOrder),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrEmptyTaskID),
		errors.Is(err, domain.ErrEmptyTaskType),
		errors.Is(err, domain.ErrUnsupportedParamValue):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, ted.ErrInvalidQuery):
		return http.StatusUnprocessableEntity, KindInvalidQuery
	case errors.Is(err, ted.ErrNoticeNotFound), errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, task.ErrDuplicateTaskID):
		return http.StatusConflict, KindDuplicateTask
	case errors.Is(err, task.ErrUnknownTaskType):
		return http.StatusBadRequest, KindUnknownTaskType
	case errors.Is(err, task.ErrQueueFull), errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable, KindQueueFull
	case errors.Is(err, ted.ErrRemoteUnavailable):
		return http.StatusBadGateway, KindUpstream
	default:
		return http.StatusInternalServerError, KindInternal
	}
}
