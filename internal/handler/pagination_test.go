package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse_PageMath(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int
		wantPages  int
		wantPrev   bool
		wantNext   bool
	}{
		{name: "empty", totalItems: 0, page: 1, wantPages: 0, wantPrev: false, wantNext: false},
		{name: "single_partial_page", totalItems: 7, page: 1, wantPages: 1, wantPrev: false, wantNext: false},
		{name: "exact_page_boundary", totalItems: 40, page: 1, wantPages: 2, wantPrev: false, wantNext: true},
		{name: "boundary_plus_one", totalItems: 41, page: 2, wantPages: 3, wantPrev: true, wantNext: true},
		{name: "last_page", totalItems: 41, page: 3, wantPages: 3, wantPrev: true, wantNext: false},
		{name: "page_beyond_range", totalItems: 41, page: 999, wantPages: 3, wantPrev: true, wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse([]string{}, tt.totalItems, tt.page)

			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.totalItems, resp.Meta.TotalItems)
			assert.Equal(t, tt.page, resp.Meta.CurrentPage)
			assert.Equal(t, PageSize, resp.Meta.PageSize)
			assert.Equal(t, tt.wantPrev, resp.Meta.HasPrev)
			assert.Equal(t, tt.wantNext, resp.Meta.HasNext)

			if tt.wantPrev {
				require.NotNil(t, resp.Meta.PrevPage)
				assert.Equal(t, tt.page-1, *resp.Meta.PrevPage)
			} else {
				assert.Nil(t, resp.Meta.PrevPage)
			}
			if tt.wantNext {
				require.NotNil(t, resp.Meta.NextPage)
				assert.Equal(t, tt.page+1, *resp.Meta.NextPage)
			} else {
				assert.Nil(t, resp.Meta.NextPage)
			}
		})
	}
}

func TestNewPaginatedResponse_NilDataRendersEmptySlice(t *testing.T) {
	resp := NewPaginatedResponse[string](nil, 0, 1)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 1},
		{query: "page=3", want: 3},
		{query: "page=0", want: 1},
		{query: "page=-5", want: 1},
		{query: "page=abc", want: 1},
		{query: "page=999", want: 999},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/games?"+tt.query, nil)
			assert.Equal(t, tt.want, pageParam(c))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1))
	assert.Equal(t, 20, pageOffset(2))
	assert.Equal(t, 40, pageOffset(3))
}
