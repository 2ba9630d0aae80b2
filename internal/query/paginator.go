package query

// Pagination bounds. The TED catalog only makes the first MaxTotalResults
// results addressable through page/limit pagination, so page counts are
// computed against the capped total.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
	MaxTotalResults = 15000
)

// Normalize clamps pagination parameters into their valid ranges: pageSize
// into [1, MaxPageSize] with 0 meaning "use the default", page to >= 1.
// Clamping is silent and documented behavior, not a failure.
func Normalize(page, pageSize int) (int, int) {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	if page < 1 {
		page = 1
	}
	return page, pageSize
}

// CapTotal clamps a reported result total to the addressable ceiling.
// Negative totals (never reported by a well-behaved remote) clamp to zero.
func CapTotal(total int) int {
	if total < 0 {
		return 0
	}
	if total > MaxTotalResults {
		return MaxTotalResults
	}
	return total
}

// PageCount returns ceil(CapTotal(total)/pageSize). A non-positive pageSize
// is normalized first so the function never divides by zero.
func PageCount(total, pageSize int) int {
	_, pageSize = Normalize(1, pageSize)
	capped := CapTotal(total)
	return (capped + pageSize - 1) / pageSize
}
