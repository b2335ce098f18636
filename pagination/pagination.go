// Package pagination divides ordered collections into fixed-size pages.
package pagination

import "strconv"

// DefaultPageSize is the number of posts shown per page.
const DefaultPageSize = 10

// Page describes one page of an ordered collection.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// New clamps number to 1 when it is zero or negative (a non-numeric query
// value parses to 0 and lands on page 1 as well) and computes the metadata
// for a collection of total items.
func New(number, size int, total int64) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1 && totalPages > 0,
	}
}

// Prev and Next are the adjacent page numbers, for links.
func (p Page) Prev() int { return p.Number - 1 }
func (p Page) Next() int { return p.Number + 1 }

// Offset is the number of items to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Slice returns the items belonging to the page. Pages beyond the range are
// empty; the last page holds the remainder.
func Slice[T any](items []T, p Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ParsePageNumber reads a page query value; anything unparseable or below 1
// is page 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
