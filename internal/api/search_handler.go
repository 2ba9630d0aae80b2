package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tedsearch/ted-search-api/internal/api/shared"
	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/service"
)

// SearchHandler handles notice search, notice detail and health requests.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles POST /search requests.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Invalid request format", err)
		return
	}

	scope, err := domain.ParseScope(req.Scope)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Invalid scope: must be ACTIVE, ARCHIVED or ALL", err)
		return
	}
	sortColumn, err := domain.ParseSortColumn(req.SortColumn)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Invalid sort column", err)
		return
	}
	sortOrder, err := domain.ParseSortOrder(req.SortOrder)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Invalid sort order: must be ASC or DESC", err)
		return
	}

	result, err := h.searchService.Search(r.Context(), domain.SearchRequest{
		Filters:  req.Filters,
		Page:     req.Page,
		PageSize: req.PageSize,
		Scope:    scope,
		Sort:     domain.Sort{Column: sortColumn, Order: sortOrder},
	})
	if err != nil {
		status, kind := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, kind, searchErrorMessage(kind), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetNotice handles GET /notice/* requests. The publication number is the
// full remainder of the path, since notice identifiers may contain slashes
// (e.g. "123456-2024" or document references with embedded separators).
func (h *SearchHandler) GetNotice(w http.ResponseWriter, r *http.Request) {
	publicationNumber := strings.Trim(chi.URLParam(r, "*"), "/")
	if publicationNumber == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindValidation,
			"Notice identifier is required", nil)
		return
	}

	detail, err := h.searchService.GetNotice(r.Context(), publicationNumber)
	if err != nil {
		status, kind := MapErrorToStatusCode(err)
		shared.RespondWithError(w, r, status, kind, searchErrorMessage(kind), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, detail)
}

// Health handles GET /health requests. It probes the remote catalog on
// every call and always answers 200; degraded availability is reported in
// the body, not the status code.
func (h *SearchHandler) Health(w http.ResponseWriter, r *http.Request) {
	available := h.searchService.Ping(r.Context()) == nil

	status := "healthy"
	if !available {
		status = "degraded"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:          status,
		TEDAPIAvailable: available,
		Timestamp:       time.Now().UTC(),
	})
}

// searchErrorMessage maps an error kind to the client-facing message.
func searchErrorMessage(kind string) string {
	switch kind {
	case KindValidation:
		return "Invalid search parameters"
	case KindInvalidQuery:
		return "The catalog rejected the compiled query"
	case KindNotFound:
		return "Notice not found"
	case KindUpstream:
		return "The TED catalog is currently unavailable"
	default:
		return "An unexpected error occurred"
	}
}
