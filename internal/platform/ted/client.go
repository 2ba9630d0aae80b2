// Package ted implements the HTTP client for the TED (Tenders Electronic
// Daily) v3 notice catalog. It owns the wire contract: building search
// payloads, classifying remote failures and normalizing raw catalog records
// into domain notices.
package ted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tedsearch/ted-search-api/internal/config"
	"github.com/tedsearch/ted-search-api/internal/domain"
	"github.com/tedsearch/ted-search-api/internal/query"
)

// noticeURLPrefix is the canonical human-facing notice page root.
const noticeURLPrefix = "https://ted.europa.eu/en/notice/"

// SearchPage is one normalized page of catalog search results, carrying the
// remote's authoritative total.
type SearchPage struct {
	Total   int
	Notices []domain.NoticeSummary
}

// Client calls the TED v3 API. It is stateless apart from its HTTP client
// and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a catalog client with a shared HTTP client carrying
// the configured request timeout.
func NewClient(cfg config.TEDConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger.With("component", "ted_client"),
	}
}

// Search runs one paginated expert query against the catalog. The caller
// supplies an already-compiled query and normalized pagination values.
// A remote timeout or connection failure returns ErrRemoteUnavailable;
// a rejected query returns ErrInvalidQuery with the remote's diagnostic.
func (c *Client) Search(
	ctx context.Context,
	compiledQuery string,
	scope domain.Scope,
	sort domain.Sort,
	page, limit int,
) (*SearchPage, error) {
	payload := searchPayload{
		Query:     compiledQuery,
		Page:      page,
		Limit:     limit,
		Scope:     string(scope),
		Fields:    summaryFields,
		SortField: string(sort.Column),
		SortOrder: string(sort.Order),
		APIKey:    c.apiKey,
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &SearchPage{
		Total:   resp.Total,
		Notices: c.normalizePage(resp.Notices),
	}, nil
}

// FetchDetail retrieves one notice with its full content payload. Returns
// ErrNoticeNotFound when the catalog has no notice under the given
// publication number.
func (c *Client) FetchDetail(ctx context.Context, publicationNumber string) (*domain.NoticeDetail, error) {
	payload := searchPayload{
		Query:  query.CompileDetailQuery(publicationNumber),
		Page:   1,
		Limit:  1,
		Fields: append(append([]string(nil), summaryFields...), contentField),
		APIKey: c.apiKey,
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	for _, record := range resp.Notices {
		summary, ok := c.normalizeRecord(record)
		if !ok {
			continue
		}

		exclude := make(map[string]struct{}, len(summaryFields)+1)
		for _, f := range summaryFields {
			exclude[f] = struct{}{}
		}
		exclude[contentField] = struct{}{}

		return &domain.NoticeDetail{
			NoticeSummary: summary,
			ContentHTML:   record.stringField(contentField),
			Metadata:      record.metadata(exclude),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoticeNotFound, publicationNumber)
}

// Ping probes catalog reachability with a minimal match-all query. Used by
// the health endpoint; the result is never cached.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.post(ctx, searchPayload{
		Query:  query.MatchAllQuery,
		Page:   1,
		Limit:  1,
		Fields: []string{"publication-number"},
		APIKey: c.apiKey,
	})
	return err
}

// post sends one search payload and classifies the outcome into the remote
// failure taxonomy.
func (c *Client) post(ctx context.Context, payload searchPayload) (*searchResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search payload: %w", err)
	}

	url := c.baseURL + "/notices/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts, connection refusals and context expiry all land here.
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decoding.
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, remoteDiagnostic(raw))
	default:
		return nil, fmt.Errorf("%w: remote returned status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", ErrRemoteUnavailable, err)
	}
	return &decoded, nil
}

// normalizePage converts raw records to notice summaries. One malformed
// record is logged and skipped; it never aborts the page.
func (c *Client) normalizePage(records []noticeRecord) []domain.NoticeSummary {
	notices := make([]domain.NoticeSummary, 0, len(records))
	for i, record := range records {
		summary, ok := c.normalizeRecord(record)
		if !ok {
			c.logger.Warn("skipping malformed catalog record", "index", i)
			continue
		}
		notices = append(notices, summary)
	}
	return notices
}

// normalizeRecord projects one raw record into a NoticeSummary. A record
// without a publication number is unusable; every other missing field
// degrades to its zero value.
func (c *Client) normalizeRecord(record noticeRecord) (domain.NoticeSummary, bool) {
	pubNumber := record.stringField("publication-number")
	if pubNumber == "" {
		return domain.NoticeSummary{}, false
	}

	return domain.NoticeSummary{
		PublicationNumber: pubNumber,
		PublicationDate:   record.stringField("publication-date"),
		Title:             record.stringField("notice-title"),
		BuyerName:         record.stringField("buyer-name"),
		Country:           record.stringField("buyer-country"),
		NoticeType:        record.stringField("notice-type"),
		CPVCodes:          record.stringListField("classification-cpv"),
		EstimatedValue:    record.numberField("estimated-value"),
		URL:               noticeURLPrefix + pubNumber,
	}, true
}

// remoteDiagnostic extracts the remote's error message from a non-200
// body, falling back to the truncated raw text.
func remoteDiagnostic(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		return er.Message
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		text = "no diagnostic provided"
	}
	return text
}
