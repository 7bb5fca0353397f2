package request

import (
	"math"

	"movies-api/pkg/utils"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (Page-1)*PageSize inside int for any allowed page size.
	MaxPage = math.MaxInt / MaxPageSize
)

type PaginatedRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize defaults non-positive values and clamps Page to MaxPage and PageSize to MaxPageSize.
func (p PaginatedRequest) Normalize() PaginatedRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PaginatedRequest) Offset() int {
	n := p.Normalize()
	return utils.CalculateOffset(n.Page, n.PageSize)
}

func (p PaginatedRequest) Limit() int {
	return p.Normalize().PageSize
}
