package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tedsearch/ted-search-api/internal/redact"
)

// ErrorResponse is the standard error envelope. Error carries the
// machine-stable kind, Message the human-readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the standard error envelope with the trace ID
// from the request context and logs the underlying error. The raw error
// never reaches the client; it is logged redacted, at ERROR level for 5xx
// and DEBUG otherwise.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, kind, message string, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_kind", kind),
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", redact.Error(err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   kind,
		Message: message,
		TraceID: traceID,
	})
}
