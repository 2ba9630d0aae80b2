// Package query translates structured search filters into the TED expert
// query grammar and normalizes pagination parameters. Both concerns are
// pure functions with no side effects.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// MatchAllQuery is the expert query compiled from an empty filter set.
const MatchAllQuery = "*"

// Compile turns a filter set into a TED expert query string. It never
// fails: absent filters simply contribute no clause. Clauses are emitted in
// a fixed order (full text, CPV, country, date bounds, value bounds) and
// OR-group members are sorted, so identical filters always compile to the
// byte-identical string regardless of caller-supplied ordering.
func Compile(f domain.SearchFilters) string {
	var clauses []string

	if text := strings.TrimSpace(f.FullText); text != "" {
		clauses = append(clauses, fullTextClause(text))
	}

	if clause := orGroup("classification-cpv", normalizeCodes(f.CPVCodes, strings.TrimSpace)); clause != "" {
		clauses = append(clauses, clause)
	}

	if clause := orGroup("buyer-country", normalizeCodes(f.BuyerCountries, func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})); clause != "" {
		clauses = append(clauses, clause)
	}

	if f.PublicationDateFrom != "" {
		clauses = append(clauses,
			fmt.Sprintf("(publication-date >= %s)", compactDate(f.PublicationDateFrom)))
	}
	if f.PublicationDateTo != "" {
		clauses = append(clauses,
			fmt.Sprintf("(publication-date <= %s)", compactDate(f.PublicationDateTo)))
	}

	if f.MinValue != nil {
		clauses = append(clauses,
			fmt.Sprintf("(estimated-value >= %s)", formatValue(*f.MinValue)))
	}
	if f.MaxValue != nil {
		clauses = append(clauses,
			fmt.Sprintf("(estimated-value <= %s)", formatValue(*f.MaxValue)))
	}

	if len(clauses) == 0 {
		return MatchAllQuery
	}
	return strings.Join(clauses, " AND ")
}

// CompileDetailQuery builds the expert query that addresses exactly one
// notice by its publication number.
func CompileDetailQuery(publicationNumber string) string {
	return fmt.Sprintf("publication-number=%q", publicationNumber)
}

// fullTextClause matches the free text against notice titles and buyer
// names, quoting the text for the remote grammar.
func fullTextClause(text string) string {
	quoted := strconv.Quote(text)
	return fmt.Sprintf("(notice-title ~ %s OR buyer-name ~ %s)", quoted, quoted)
}

// orGroup renders an equality OR-group over the given field. A single
// member stays unwrapped; the empty set renders to the empty string.
func orGroup(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}

	terms := make([]string, len(values))
	for i, v := range values {
		terms[i] = fmt.Sprintf("(%s = %s)", field, v)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// normalizeCodes trims, deduplicates and sorts a code list so caller
// ordering never leaks into the compiled query.
func normalizeCodes(codes []string, canon func(string) string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = canon(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// compactDate renders an ISO "YYYY-MM-DD" date in the YYYYMMDD form the
// expert grammar expects.
func compactDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

// formatValue renders an EUR amount without a trailing ".0" for whole
// numbers, keeping compiled queries stable and readable.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
