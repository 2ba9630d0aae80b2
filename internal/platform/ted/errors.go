package ted

import "errors"

// Errors returned by the catalog client. Handlers map these onto the HTTP
// error surface, so they are the complete remote failure taxonomy.
var (
	// ErrRemoteUnavailable is returned on timeout, connection failure or a
	// server-side error at the TED catalog. The client never reports an
	// unreachable catalog as an empty result set.
	ErrRemoteUnavailable = errors.New("TED catalog unavailable")

	// ErrInvalidQuery is returned when the catalog rejects the compiled
	// expert query. The wrapped message carries the remote's diagnostic
	// text.
	ErrInvalidQuery = errors.New("TED catalog rejected the query")

	// ErrNoticeNotFound is returned when a detail lookup addresses a
	// publication number the catalog does not know.
	ErrNoticeNotFound = errors.New("notice not found")
)
