package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tedsearch/ted-search-api/internal/api/shared"
	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/task"
)

// TaskHandler handles asynchronous processing task requests.
type TaskHandler struct {
	runner     *task.Runner
	registry   *task.Registry
	aggregator *task.Aggregator
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(runner *task.Runner, registry *task.Registry, aggregator *task.Aggregator) *TaskHandler {
	return &TaskHandler{
		runner:     runner,
		registry:   registry,
		aggregator: aggregator,
	}
}

// SubmitTask handles POST /process requests. The task is registered and
// queued; processing happens asynchronously and the response only
// acknowledges acceptance.
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"task_id, task_type and at least one notice_id are required", err)
		return
	}

	t, err := domain.NewTask(req.TaskID, req.TaskType, req.NoticeIDs, req.Parameters)
	if err != nil {
		status, kind := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, kind, taskErrorMessage(kind), err)
		return
	}

	if err := h.runner.Submit(r.Context(), t); err != nil {
		status, kind := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, kind, taskErrorMessage(kind), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, ProcessAccepted{
		TaskID:  t.ID,
		Status:  "accepted",
		Message: "task queued for processing",
	})
}

// GetTask handles GET /process/{task_id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")

	t, err := h.registry.Get(taskID)
	if err != nil {
		status, kind := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, kind, taskErrorMessage(kind), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// GetStatistics handles GET /statistics requests, reporting aggregate
// counts over every task the registry has seen since startup.
func (h *TaskHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.aggregator.Collect())
}

// taskErrorMessage maps an error kind to the client-facing message.
func taskErrorMessage(kind string) string {
	switch kind {
	case KindValidation:
		return "Invalid task submission"
	case KindNotFound:
		return "Task not found"
	case KindDuplicateTask:
		return "A task with this ID already exists"
	case KindUnknownTaskType:
		return "Unsupported task type"
	case KindQueueFull:
		return "Processing queue is at capacity, retry later"
	default:
		return "An unexpected error occurred"
	}
}
