package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// filterDateLayout is the ISO date format accepted in publication-date
// filter bounds.
const filterDateLayout = "2006-01-02"

// Scope selects which lifecycle partition of the notice catalog a search
// addresses.
type Scope string

// Supported search scopes.
const (
	ScopeActive   Scope = "ACTIVE"
	ScopeArchived Scope = "ARCHIVED"
	ScopeAll      Scope = "ALL"
)

// ParseScope converts a raw string to a Scope. An empty string defaults to
// ScopeActive; unknown values return ErrInvalidScope.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopeActive, nil
	}
	sc := Scope(strings.ToUpper(s))
	switch sc {
	case ScopeActive, ScopeArchived, ScopeAll:
		return sc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
}

// SortColumn names a notice field the remote catalog can order results by.
type SortColumn string

// Supported sort columns.
const (
	SortByPublicationNumber SortColumn = "publication-number"
	SortByPublicationDate   SortColumn = "publication-date"
	SortByNoticeType        SortColumn = "notice-type"
	SortByBuyerName         SortColumn = "buyer-name"
)

// ParseSortColumn converts a raw string to a SortColumn. An empty string
// defaults to SortByPublicationDate.
func ParseSortColumn(s string) (SortColumn, error) {
	if s == "" {
		return SortByPublicationDate, nil
	}
	col := SortColumn(strings.ToLower(s))
	switch col {
	case SortByPublicationNumber, SortByPublicationDate, SortByNoticeType, SortByBuyerName:
		return col, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortColumn, s)
}

// SortOrder is the direction of a sort.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder converts a raw string to a SortOrder. An empty string
// defaults to SortDesc, matching the catalog's newest-first presentation.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDesc, nil
	}
	ord := SortOrder(strings.ToUpper(s))
	switch ord {
	case SortAsc, SortDesc:
		return ord, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// Sort pairs a column with a direction.
type Sort struct {
	Column SortColumn
	Order  SortOrder
}

// SearchFilters holds the optional structured criteria of a notice search.
// All fields may be empty; absent filters simply contribute no query clause.
type SearchFilters struct {
	// FullText is matched against notice titles and buyer names.
	FullText string `json:"full_text,omitempty"`

	// CPVCodes restricts results to notices tagged with any of the given
	// CPV classification codes.
	CPVCodes []string `json:"cpv_codes,omitempty"`

	// BuyerCountries restricts results to buyers in any of the given
	// ISO 3166-1 alpha-3 country codes.
	BuyerCountries []string `json:"buyer_countries,omitempty"`

	// PublicationDateFrom and PublicationDateTo bound the publication
	// date inclusively, in "YYYY-MM-DD" form.
	PublicationDateFrom string `json:"publication_date_from,omitempty"`
	PublicationDateTo   string `json:"publication_date_to,omitempty"`

	// MinValue and MaxValue bound the estimated contract value in EUR.
	MinValue *float64 `json:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty"`
}

// Validate checks the filter invariants: well-formed dates with from <= to,
// min_value <= max_value, 3-letter country codes and numeric CPV codes.
// All violations are wrapped in ErrInvalidFilters so callers can map them
// to a single client-error class.
func (f SearchFilters) Validate() error {
	var from, to time.Time
	var err error

	if f.PublicationDateFrom != "" {
		from, err = time.Parse(filterDateLayout, f.PublicationDateFrom)
		if err != nil {
			return fmt.Errorf("%w: publication_date_from %q is not a valid YYYY-MM-DD date",
				ErrInvalidFilters, f.PublicationDateFrom)
		}
	}
	if f.PublicationDateTo != "" {
		to, err = time.Parse(filterDateLayout, f.PublicationDateTo)
		if err != nil {
			return fmt.Errorf("%w: publication_date_to %q is not a valid YYYY-MM-DD date",
				ErrInvalidFilters, f.PublicationDateTo)
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return fmt.Errorf("%w: publication_date_from %s is after publication_date_to %s",
			ErrInvalidFilters, f.PublicationDateFrom, f.PublicationDateTo)
	}

	if f.MinValue != nil && *f.MinValue < 0 {
		return fmt.Errorf("%w: min_value must not be negative", ErrInvalidFilters)
	}
	if f.MaxValue != nil && *f.MaxValue < 0 {
		return fmt.Errorf("%w: max_value must not be negative", ErrInvalidFilters)
	}
	if f.MinValue != nil && f.MaxValue != nil && *f.MinValue > *f.MaxValue {
		return fmt.Errorf("%w: min_value %.2f exceeds max_value %.2f",
			ErrInvalidFilters, *f.MinValue, *f.MaxValue)
	}

	for _, c := range f.BuyerCountries {
		if !isAlpha3(c) {
			return fmt.Errorf("%w: buyer country %q is not a 3-letter ISO code",
				ErrInvalidFilters, c)
		}
	}

	for _, code := range f.CPVCodes {
		if !isNumeric(code) {
			return fmt.Errorf("%w: CPV code %q is not numeric", ErrInvalidFilters, code)
		}
	}

	return nil
}

// IsEmpty reports whether no filter field is set.
func (f SearchFilters) IsEmpty() bool {
	return f.FullText == "" &&
		len(f.CPVCodes) == 0 &&
		len(f.BuyerCountries) == 0 &&
		f.PublicationDateFrom == "" &&
		f.PublicationDateTo == "" &&
		f.MinValue == nil &&
		f.MaxValue == nil
}

func isAlpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// SearchRequest is one search call against the catalog: filters plus
// pagination, scope and ordering. It is owned transiently per call and
// never persisted.
type SearchRequest struct {
	Filters  SearchFilters
	Page     int
	PageSize int
	Scope    Scope
	Sort     Sort
}

// SearchResult is the outcome of one paginated search. Notices preserve the
// remote catalog's reported ordering; SearchQuery carries the compiled
// expert query for diagnostics.
type SearchResult struct {
	TotalNotices int             `json:"total_notices"`
	TotalPages   int             `json:"total_pages"`
	CurrentPage  int             `json:"current_page"`
	PageSize     int             `json:"page_size"`
	Notices      []NoticeSummary `json:"notices"`
	SearchQuery  string          `json:"search_query"`
	Timestamp    time.Time       `json:"timestamp"`
}
