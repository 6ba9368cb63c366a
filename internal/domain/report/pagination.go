package report

import "strconv"

// DefaultPageSize matches the dashboard's default limit query parameter.
const DefaultPageSize = 20

// Pagination is 0-indexed internally; the query-string surface is
// 1-indexed.
type Pagination struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// PaginationFromQuery builds pagination state from the page/limit query
// parameters. Missing, malformed or non-positive values are clamped to the
// defaults rather than rejected, so they can never reach the backend.
func PaginationFromQuery(pageStr, limitStr string, maxPageSize int) Pagination {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultPageSize
	}
	if maxPageSize > 0 && limit > maxPageSize {
		limit = maxPageSize
	}

	return Pagination{PageIndex: page - 1, PageSize: limit}
}

// PageCount derives the total page count from the server-reported total.
func (p Pagination) PageCount(total int64) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// ClampIndex bounds the page index to [0, max(pageCount-1, 0)].
func (p Pagination) ClampIndex(total int64) Pagination {
	maxIndex := p.PageCount(total) - 1
	if maxIndex < 0 {
		maxIndex = 0
	}
	if p.PageIndex > maxIndex {
		p.PageIndex = maxIndex
	}
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	return p
}
