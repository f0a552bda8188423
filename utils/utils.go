package utils

import "math"

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// MaxPageSize caps client supplied page sizes.
const MaxPageSize = 100

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// PageBounds returns the slice bounds of the page described by p over
// totalItems. Out of range pages yield an empty window.
func (p *Pagination) PageBounds(totalItems int) (int, int) {
	if totalItems < 0 {
		totalItems = 0
	}
	// Compare page indexes before multiplying so huge values cannot overflow.
	if totalItems == 0 || p.PageSize <= 0 || p.CurrentPage < 1 ||
		p.CurrentPage-1 > (totalItems-1)/p.PageSize {
		return totalItems, totalItems
	}
	start := (p.CurrentPage - 1) * p.PageSize
	end := totalItems
	if p.PageSize < totalItems-start {
		end = start + p.PageSize
	}
	return start, end
}
