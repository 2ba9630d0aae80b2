package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/platform/ted"
	"github.com/tedsearch/ted-search-api/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"invalid filters", domain.ErrInvalidFilters, http.StatusBadRequest, KindValidation},
		{"invalid scope", domain.ErrInvalidScope, http.StatusBadRequest, KindValidation},
		{"remote rejected query", ted.ErrInvalidQuery, http.StatusUnprocessableEntity, KindInvalidQuery},
		{"notice missing", ted.ErrNoticeNotFound, http.StatusNotFound, KindNotFound},
		{"task missing", task.ErrTaskNotFound, http.StatusNotFound, KindNotFound},
		{"duplicate task", task.ErrDuplicateTaskID, http.StatusConflict, KindDuplicateTask},
		{"unknown task type", task.ErrUnknownTaskType, http.StatusBadRequest, KindUnknownTaskType},
		{"queue full", task.ErrQueueFull, http.StatusServiceUnavailable, KindQueueFull},
		{"remote down", ted.ErrRemoteUnavailable, http.StatusBadGateway, KindUpstream},
		{"unclassified", errors.New("mystery"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Wrapped errors must classify the same as bare sentinels.
			status, kind := MapErrorToStatusCode(fmt.Errorf("context: %w", tt.err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}
