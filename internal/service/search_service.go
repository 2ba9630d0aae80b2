// Package service contains the application services orchestrating the
// domain, the query compiler and the catalog client.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/platform/ted"
	"github.com/tedsearch/ted-search-api/internal/query"
)

// Catalog is the slice of the TED client the search service depends on.
type Catalog interface {
	Search(ctx context.Context, compiledQuery string, scope domain.Scope,
		sort domain.Sort, page, limit int) (*ted.SearchPage, error)
	FetchDetail(ctx context.Context, publicationNumber string) (*domain.NoticeDetail, error)
	Ping(ctx context.Context) error
}

// SearchService is the top-level orchestration behind the HTTP boundary:
// it validates filters, compiles the expert query, normalizes pagination
// and delegates to the catalog client. It holds no mutable state and is
// safe for concurrent use.
type SearchService struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewSearchService creates a search service over the given catalog client.
func NewSearchService(catalog Catalog, logger *slog.Logger) *SearchService {
	return &SearchService{
		catalog: catalog,
		logger:  logger.With("component", "search_service"),
	}
}

// Search runs one paginated notice search. Invalid filters fail before any
// remote call is made; the result carries the compiled query for
// diagnostics and the remote's authoritative total, capped at the
// addressable ceiling.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	if err := req.Filters.Validate(); err != nil {
		return nil, err
	}

	page, pageSize := query.Normalize(req.Page, req.PageSize)
	compiled := query.Compile(req.Filters)

	s.logger.Debug("searching catalog",
		"query", compiled,
		"scope", req.Scope,
		"page", page,
		"page_size", pageSize)

	remote, err := s.catalog.Search(ctx, compiled, req.Scope, req.Sort, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	total := query.CapTotal(remote.Total)
	return &domain.SearchResult{
		TotalNotices: total,
		TotalPages:   query.PageCount(remote.Total, pageSize),
		CurrentPage:  page,
		PageSize:     pageSize,
		Notices:      remote.Notices,
		SearchQuery:  compiled,
		Timestamp:    time.Now().UTC(),
	}, nil
}

// GetNotice fetches one notice's full detail by publication number. The
// detail is fetched on demand and never cached.
func (s *SearchService) GetNotice(ctx context.Context, publicationNumber string) (*domain.NoticeDetail, error) {
	detail, err := s.catalog.FetchDetail(ctx, publicationNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch notice %s: %w", publicationNumber, err)
	}
	return detail, nil
}

// Ping reports live catalog reachability for the health endpoint.
func (s *SearchService) Ping(ctx context.Context) error {
	return s.catalog.Ping(ctx)
}
