package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"INVALID_INPUT", http.StatusBadRequest},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONFLICT", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"DATA_INTEGRITY", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestListRequestToFilter(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		filter := ListRequest{}.ToFilter()
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		assert.NotNil(t, filter.Filters)
	})

	t.Run("page size clamped", func(t *testing.T) {
		filter := ListRequest{Page: 2, PageSize: 500}.ToFilter()
		assert.Equal(t, 2, filter.Page)
		assert.Equal(t, 100, filter.PageSize)
	})

	t.Run("passthrough", func(t *testing.T) {
		filter := ListRequest{Page: 3, PageSize: 50, OrderBy: "name", OrderDir: "asc", Search: "wid"}.ToFilter()
		assert.Equal(t, "name", filter.OrderBy)
		assert.Equal(t, "asc", filter.OrderDir)
		assert.Equal(t, "wid", filter.Search)
	})
}

func TestNewMetaFromPagination(t *testing.T) {
	meta := NewMetaFromPagination(41, 2, 20)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMetaFromPagination(0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}
