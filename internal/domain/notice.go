package domain

// NoticeSummary is the normalized projection of one remote catalog record.
// It is immutable once constructed; fields missing from the remote record
// are left at their zero value rather than failing normalization.
type NoticeSummary struct {
	// PublicationNumber is the catalog's canonical notice identifier,
	// structured as <year>/S<issue>-<sequence>.
	PublicationNumber string `json:"publication_number"`

	// PublicationDate is the notice's publication date as reported by the
	// catalog, normally in "YYYY-MM-DD" form.
	PublicationDate string `json:"publication_date,omitempty"`

	Title      string   `json:"title,omitempty"`
	BuyerName  string   `json:"buyer_name,omitempty"`
	Country    string   `json:"country,omitempty"`
	NoticeType string   `json:"notice_type,omitempty"`
	CPVCodes   []string `json:"cpv_codes,omitempty"`

	// EstimatedValue is the estimated contract value in EUR, nil when the
	// notice does not report one.
	EstimatedValue *float64 `json:"estimated_value,omitempty"`

	// URL is the canonical human-facing notice page.
	URL string `json:"url,omitempty"`
}

// NoticeDetail extends a NoticeSummary with the notice's full content
// payload and free-form metadata. Details are fetched on demand and never
// cached across requests.
type NoticeDetail struct {
	NoticeSummary

	ContentHTML string                `json:"content_html,omitempty"`
	Metadata    map[string]ParamValue `json:"metadata,omitempty"`
}
