package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page is a normalized page/limit pair.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page and limit into their valid ranges.
// Non-positive values fall back to the defaults and limit is capped at MaxLimit.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages of size limit are needed for total rows.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
