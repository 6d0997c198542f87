package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int64
		totalPages int
		first      bool
		last       bool
	}{
		{"single page", 1, 20, 5, 1, true, true},
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, false, false},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact boundary", 2, 20, 40, 2, false, true},
		{"empty result", 1, 20, 0, 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CreatePaginationMeta(&PaginationParams{Page: tt.page, PageSize: tt.pageSize}, tt.total)

			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.first, meta.First)
			assert.Equal(t, tt.last, meta.Last)
		})
	}
}

func TestPaginationSkipLimit(t *testing.T) {
	params := &PaginationParams{Page: 3, PageSize: 25}
	assert.Equal(t, 50, params.GetSkip())
	assert.Equal(t, 25, params.GetLimit())
}
