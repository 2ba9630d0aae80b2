package ted

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tedsearch/ted-search-api/internal/config"
	"github.com/tedsearch/ted-search-api/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// newTestClient spins up a fake TED server and a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.TEDConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
	}, testLogger())
	return client, srv
}

func decodePayload(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestSearchSendsExpertQueryPayload(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notices/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		captured = decodePayload(t, r)
		_, _ = w.Write([]byte(`{"total": 0, "notices": []}`))
	})

	sort := domain.Sort{Column: domain.SortByPublicationDate, Order: domain.SortDesc}
	_, err := client.Search(context.Background(), "(buyer-country = DEU)", domain.ScopeActive, sort, 2, 50)
	require.NoError(t, err)

	assert.Equal(t, "(buyer-country = DEU)", captured["query"])
	assert.Equal(t, 2.0, captured["page"])
	assert.Equal(t, 50.0, captured["limit"])
	assert.Equal(t, "ACTIVE", captured["scope"])
	assert.Equal(t, "publication-date", captured["sortField"])
	assert.Equal(t, "DESC", captured["sortOrder"])
	assert.Contains(t, captured["fields"], "publication-number")
	assert.NotContains(t, captured, "apiKey")
}

func TestSearchIncludesAPIKeyWhenConfigured(t *testing.T) {
	var captured map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = decodePayload(t, r)
		_, _ = w.Write([]byte(`{"total": 0, "notices": []}`))
	}))
	defer srv.Close()

	client := NewClient(config.TEDConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
		APIKey:         "test-key",
	}, testLogger())

	_, err := client.Search(context.Background(), "*", domain.ScopeAll, domain.Sort{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "test-key", captured["apiKey"])
}

func TestSearchNormalizesRecords(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"total": 3,
			"notices": [
				{
					"publication-number": "2025/S1-123456789",
					"publication-date": "2025-03-14",
					"notice-title": {"eng": ["Road works"], "deu": ["Strassenbau"]},
					"buyer-name": {"deu": ["Stadt Berlin"]},
					"buyer-country": "DEU",
					"classification-cpv": ["45000000", "45233120"],
					"notice-type": "cn-standard",
					"estimated-value": 1250000.5
				},
				{
					"publication-number": "2025/S1-987654321"
				},
				{
					"notice-title": "orphan record without publication number"
				}
			]
		}`))
	})

	page, err := client.Search(context.Background(), "*", domain.ScopeActive, domain.Sort{}, 1, 25)
	require.NoError(t, err)

	assert.Equal(t, 3, page.Total)
	// The record without a publication number is skipped, not fatal.
	require.Len(t, page.Notices, 2)

	first := page.Notices[0]
	assert.Equal(t, "2025/S1-123456789", first.PublicationNumber)
	assert.Equal(t, "2025-03-14", first.PublicationDate)
	assert.Equal(t, "Road works", first.Title, "english title preferred")
	assert.Equal(t, "Stadt Berlin", first.BuyerName, "falls back to available language")
	assert.Equal(t, "DEU", first.Country)
	assert.Equal(t, []string{"45000000", "45233120"}, first.CPVCodes)
	assert.Equal(t, "cn-standard", first.NoticeType)
	require.NotNil(t, first.EstimatedValue)
	assert.Equal(t, 1250000.5, *first.EstimatedValue)
	assert.Equal(t, "https://ted.europa.eu/en/notice/2025/S1-123456789", first.URL)

	// Partially populated record keeps zero values instead of failing.
	second := page.Notices[1]
	assert.Equal(t, "2025/S1-987654321", second.PublicationNumber)
	assert.Empty(t, second.Title)
	assert.Nil(t, second.EstimatedValue)
}

func TestSearchRemoteRejectsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "unknown field 'bogus-field'"}`))
	})

	_, err := client.Search(context.Background(), "bogus-field = 1", domain.ScopeActive, domain.Sort{}, 1, 25)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "unknown field 'bogus-field'")
}

func TestSearchRemoteServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Search(context.Background(), "*", domain.ScopeActive, domain.Sort{}, 1, 25)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestSearchRemoteTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"total": 0, "notices": []}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, "*", domain.ScopeActive, domain.Sort{}, 1, 25)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestSearchConnectionRefused(t *testing.T) {
	client := NewClient(config.TEDConfig{
		// Closed immediately below, so nothing listens here.
		BaseURL:        "http://127.0.0.1:1",
		TimeoutSeconds: 1,
	}, testLogger())

	_, err := client.Search(context.Background(), "*", domain.ScopeActive, domain.Sort{}, 1, 25)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestSearchMalformedResponseBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.Search(context.Background(), "*", domain.ScopeActive, domain.Sort{}, 1, 25)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestFetchDetail(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured = decodePayload(t, r)
		_, _ = w.Write([]byte(`{
			"total": 1,
			"notices": [{
				"publication-number": "2025/S1-123456789",
				"notice-title": {"eng": ["Road works"]},
				"CONTENT": "<section>full notice body</section>",
				"procedure-type": "open",
				"deadline-days": 30
			}]
		}`))
	})

	detail, err := client.FetchDetail(context.Background(), "2025/S1-123456789")
	require.NoError(t, err)

	assert.Equal(t, `publication-number="2025/S1-123456789"`, captured["query"])
	assert.Contains(t, captured["fields"], "CONTENT")

	assert.Equal(t, "2025/S1-123456789", detail.PublicationNumber)
	assert.Equal(t, "Road works", detail.Title)
	assert.Equal(t, "<section>full notice body</section>", detail.ContentHTML)

	require.NotNil(t, detail.Metadata)
	proc, ok := detail.Metadata["procedure-type"].AsString()
	require.True(t, ok)
	assert.Equal(t, "open", proc)
	days, ok := detail.Metadata["deadline-days"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 30.0, days)

	// Summary fields are not duplicated into metadata.
	assert.NotContains(t, detail.Metadata, "notice-title")
	assert.NotContains(t, detail.Metadata, "CONTENT")
}

func TestFetchDetailNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 0, "notices": []}`))
	})

	_, err := client.FetchDetail(context.Background(), "2099/S9-000000000")
	assert.ErrorIs(t, err, ErrNoticeNotFound)
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload := decodePayload(t, r)
		assert.Equal(t, "*", payload["query"])
		assert.Equal(t, 1.0, payload["limit"])
		_, _ = w.Write([]byte(`{"total": 12345, "notices": []}`))
	})

	assert.NoError(t, client.Ping(context.Background()))
}

func TestPingUnavailable(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	err := client.Ping(context.Background())
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}
