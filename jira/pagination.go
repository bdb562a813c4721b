package jira

import "strconv"

// DefaultMaxResults is the page size used when none is given.
const DefaultMaxResults = 50

// Pagination is both the paging request option (startAt, maxResults) and the
// paging metadata Jira returns alongside paged collections.
type Pagination struct {
	StartAt    int    `json:"startAt"`
	MaxResults int    `json:"maxResults"`
	NextPage   string `json:"nextPage,omitempty"`
	Total      int    `json:"total"`
	IsLast     bool   `json:"isLast"`
}

// NewPagination requests max results starting at start.
func NewPagination(start, maxResults int) Pagination {
	return Pagination{StartAt: start, MaxResults: maxResults}
}

// DefaultPagination requests the first page of DefaultMaxResults items.
func DefaultPagination() Pagination {
	return NewPagination(0, DefaultMaxResults)
}

// Query implements QueryOption.
func (p Pagination) Query() map[string]string {
	return map[string]string{
		"startAt":    strconv.Itoa(p.StartAt),
		"maxResults": strconv.Itoa(p.MaxResults),
	}
}

// Next returns the request for the page after p. It reports false when p is
// the last page, either flagged by the server or implied by a known total,
// and when the page size is not positive. Callers chain page requests with it.
func (p Pagination) Next() (Pagination, bool) {
	if p.IsLast || p.MaxResults <= 0 {
		return Pagination{}, false
	}
	next := p.StartAt + p.MaxResults
	if p.Total > 0 && next >= p.Total {
		return Pagination{}, false
	}
	return NewPagination(next, p.MaxResults), true
}

// pageOrDefault dereferences page, falling back to DefaultPagination.
func pageOrDefault(page *Pagination) Pagination {
	if page == nil {
		return DefaultPagination()
	}
	return Pagination{StartAt: page.StartAt, MaxResults: page.MaxResults}
}
