package mongodb

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const defaultPerPage = 20

// PageRequest describes the page window and sort order of a paginated
// read. Sort is a field name, prefixed with '-' for descending.
type PageRequest struct {
	Page    int
	PerPage int
	Sort    string
}

// ApplyDefaults normalizes an out-of-range page request in place.
func (p *PageRequest) ApplyDefaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.Sort == "" {
		p.Sort = "-createdAt"
	}
}

// Skip returns the number of documents before the requested page.
func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

// SortSpec translates the sort string into a store sort document.
func (p PageRequest) SortSpec() bson.D {
	field := p.Sort
	order := 1
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// Page is one window of a paginated result set.
type Page[T any] struct {
	Items     []T   `json:"items"`
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	PerPage   int   `json:"perPage"`
	PageCount int   `json:"pageCount"`
}

// PageCount returns ceil(total / perPage).
func PageCount(total int64, perPage int) int {
	if perPage < 1 || total < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
