package request

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PaginatedRequest
		want PaginatedRequest
	}{
		{name: "zero value", in: PaginatedRequest{}, want: PaginatedRequest{Page: 1, PageSize: 10}},
		{name: "negative", in: PaginatedRequest{Page: -2, PageSize: -5}, want: PaginatedRequest{Page: 1, PageSize: 10}},
		{name: "over max", in: PaginatedRequest{Page: 3, PageSize: 500}, want: PaginatedRequest{Page: 3, PageSize: MaxPageSize}},
		{name: "page past max", in: PaginatedRequest{Page: math.MaxInt / 5, PageSize: 10}, want: PaginatedRequest{Page: MaxPage, PageSize: 10}},
		{name: "unchanged", in: PaginatedRequest{Page: 2, PageSize: 25}, want: PaginatedRequest{Page: 2, PageSize: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPaginatedRequestOffsetLimit(t *testing.T) {
	p := PaginatedRequest{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	p = PaginatedRequest{}
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, DefaultPageSize, p.Limit())
}

func TestPaginatedRequestOffsetNeverNegative(t *testing.T) {
	for _, page := range []int{1, 2, MaxPage - 1, MaxPage, MaxPage + 1, math.MaxInt / 5, math.MaxInt} {
		for _, size := range []int{1, 10, MaxPageSize, MaxPageSize + 1} {
			p := PaginatedRequest{Page: page, PageSize: size}
			assert.GreaterOrEqual(t, p.Offset(), 0, "page=%d pageSize=%d", page, size)
		}
	}
}
