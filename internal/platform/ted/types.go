package ted

import (
	"encoding/json"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// Field names requested from the TED v3 search endpoint for notice
// summaries.
var summaryFields = []string{
	"publication-number",
	"publication-date",
	"notice-title",
	"buyer-name",
	"buyer-country",
	"classification-cpv",
	"notice-type",
	"estimated-value",
}

// contentField is the aggregate field carrying a notice's full content
// payload, requested only for detail lookups.
const contentField = "CONTENT"

// preferredLangs orders the languages tried when resolving a multilingual
// field, most preferred first.
var preferredLangs = []string{"eng", "deu", "fra", "spa", "ita"}

// searchPayload is the JSON body POSTed to <base>/notices/search.
type searchPayload struct {
	Query     string   `json:"query"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
	Scope     string   `json:"scope,omitempty"`
	Fields    []string `json:"fields"`
	SortField string   `json:"sortField,omitempty"`
	SortOrder string   `json:"sortOrder,omitempty"`
	APIKey    string   `json:"apiKey,omitempty"`
}

// searchResponse mirrors the top-level TED v3 search response.
type searchResponse struct {
	Notices []noticeRecord `json:"notices"`
	Total   int            `json:"total"`
}

// errorResponse mirrors the TED error body; Message carries the remote's
// diagnostic text for rejected queries.
type errorResponse struct {
	Message string `json:"message"`
}

// noticeRecord is one raw catalog record. Field values vary in shape
// (string, list of strings, or language map), so they are decoded lazily
// per field.
type noticeRecord map[string]json.RawMessage

// stringField resolves a record field to a single string, tolerating the
// three shapes TED uses: a plain string, a list of strings (first entry
// wins) and a language map (resolved by language preference, then first
// available). Returns "" when the field is absent or unusable.
func (r noticeRecord) stringField(name string) string {
	raw, ok := r[name]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return list[0]
		}
		return ""
	}

	var byLang map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byLang); err == nil {
		for _, lang := range preferredLangs {
			if v, ok := byLang[lang]; ok {
				if s := firstString(v); s != "" {
					return s
				}
			}
		}
		for _, v := range byLang {
			if s := firstString(v); s != "" {
				return s
			}
		}
	}

	return ""
}

// stringListField resolves a record field to a list of strings, accepting
// either a single string or a list.
func (r noticeRecord) stringListField(name string) []string {
	raw, ok := r[name]
	if !ok {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list
	}
	return nil
}

// numberField resolves a record field to a float64 pointer, nil when the
// field is absent or not numeric.
func (r noticeRecord) numberField(name string) *float64 {
	raw, ok := r[name]
	if !ok {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	return nil
}

// firstString decodes a raw value that is either a string or a list of
// strings and returns the first entry.
func firstString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}

// metadata converts the record's leftover fields (everything not already
// projected into the summary, and not the content payload) into the
// restricted parameter-value union. Composite values that are not language
// maps are skipped to keep serialization deterministic.
func (r noticeRecord) metadata(exclude map[string]struct{}) map[string]domain.ParamValue {
	meta := make(map[string]domain.ParamValue)
	for name, raw := range r {
		if _, skip := exclude[name]; skip {
			continue
		}

		var v domain.ParamValue
		if err := json.Unmarshal(raw, &v); err == nil {
			meta[name] = v
			continue
		}

		// Language maps and string lists still flatten to a string.
		if s := r.stringField(name); s != "" {
			meta[name] = domain.StringValue(s)
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
