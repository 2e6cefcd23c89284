package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageSize is the fixed number of items per page on every listing.
const PageSize = 20

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
	PrevPage    *int  `json:"prev_page,omitempty"`
	NextPage    *int  `json:"next_page,omitempty"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse. A page beyond the
// last one is not an error: the data slice is simply empty and the
// navigation flags are computed as usual.
func NewPaginatedResponse[T any](data []T, totalItems int64, page int) PaginatedResponse[T] {
	totalPages := int((totalItems + PageSize - 1) / PageSize)

	meta := PaginationMeta{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    PageSize,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
	if meta.HasPrev {
		p := page - 1
		meta.PrevPage = &p
	}
	if meta.HasNext {
		n := page + 1
		meta.NextPage = &n
	}

	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{Data: data, Meta: meta}
}

// pageParam reads the 1-based "page" query parameter. Non-numeric or
// non-positive input coerces to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func pageOffset(page int) int {
	return (page - 1) * PageSize
}
