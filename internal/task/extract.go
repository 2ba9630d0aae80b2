package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tedsearch/ted-search-api/internal/domain"
)

// TaskTypePDFExtract is the built-in task type that pulls each target
// notice's full content and extracts its plain text.
const TaskTypePDFExtract = "pdf_extract"

// DetailFetcher is the slice of the catalog client the extract handler
// needs. Kept as an interface so tests can fake the catalog.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, publicationNumber string) (*domain.NoticeDetail, error)
}

// NewPDFExtractHandler returns the handler for TaskTypePDFExtract. For
// every target notice it fetches the detail payload and strips the content
// markup; the result reports per-task counters. The task only fails when
// no target notice could be processed at all — partial failure is recorded
// in the counters instead.
func NewPDFExtractHandler(fetcher DetailFetcher, logger *slog.Logger) HandlerFunc {
	log := logger.With("component", "pdf_extract_handler")

	return func(ctx context.Context, t *domain.Task) (map[string]domain.ParamValue, error) {
		if len(t.NoticeIDs) == 0 {
			return nil, fmt.Errorf("task %s has no target notices", t.ID)
		}

		var processed, failed, totalChars int
		var lastErr error

		for _, noticeID := range t.NoticeIDs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			detail, err := fetcher.FetchDetail(ctx, noticeID)
			if err != nil {
				log.Warn("failed to fetch notice for extraction",
					"task_id", t.ID,
					"notice_id", noticeID,
					"error", err)
				failed++
				lastErr = err
				continue
			}

			text := stripMarkup(detail.ContentHTML)
			totalChars += len(text)
			processed++
		}

		if processed == 0 {
			return nil, fmt.Errorf("no notice could be processed: %w", lastErr)
		}

		return map[string]domain.ParamValue{
			"notices_processed": domain.NumberValue(float64(processed)),
			"notices_failed":    domain.NumberValue(float64(failed)),
			"total_characters":  domain.NumberValue(float64(totalChars)),
		}, nil
	}
}

// stripMarkup removes tags from an HTML fragment and collapses the
// remaining whitespace. Good enough for length accounting; this is not an
// HTML parser.
func stripMarkup(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
