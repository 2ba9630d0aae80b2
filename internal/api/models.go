// Package api contains the HTTP handlers, request/response models and the
// error-to-status mapping of the notice search service.
package api

import (
	"time"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// SearchRequest is the request body for POST /search. Pagination and sort
// fields are optional; absent values fall back to the service defaults.
type SearchRequest struct {
	Filters    domain.SearchFilters `json:"filters"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	Scope      string               `json:"scope"`
	SortColumn string               `json:"sort_column"`
	SortOrder  string               `json:"sort_order"`
}

// ProcessRequest is the request body for POST /process.
type ProcessRequest struct {
	TaskID     string                       `json:"task_id"     validate:"required"`
	TaskType   string                       `json:"task_type"   validate:"required"`
	NoticeIDs  []string                     `json:"notice_ids"  validate:"required,min=1"`
	Parameters map[string]domain.ParamValue `json:"parameters"`
}

// ProcessAccepted is the 202 response body for POST /process.
type ProcessAccepted struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the response body for GET /health. Status is "healthy"
// when the remote catalog answered the liveness probe and "degraded"
// otherwise; the endpoint itself always returns 200 while the process is up.
type HealthResponse struct {
	Status          string    `json:"status"`
	TEDAPIAvailable bool      `json:"ted_api_available"`
	Timestamp       time.Time `json:"timestamp"`
}
