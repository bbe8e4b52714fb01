package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		totalPages  int
	}{
		{1, 10, 0, 0},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{3, 25, 51, 3},
		{1, 1, 7, 7},
	}
	for _, tc := range cases {
		p := NewPagination(tc.page, tc.limit, tc.total)
		assert.Equal(t, tc.totalPages, p.TotalPages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.page, p.Page)
		assert.Equal(t, tc.limit, p.Limit)
		assert.Equal(t, tc.total, p.Total)
	}
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(1, 0, 42)
	assert.Zero(t, p.TotalPages)
}
