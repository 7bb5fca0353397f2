package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// PaginationMetadata is serialized into the X-Pagination response header.
type PaginationMetadata struct {
	TotalItemCount int64 `json:"totalItemCount"`
	TotalPages     int   `json:"totalPages"`
	CurrentPage    int   `json:"currentPage"`
	PageSize       int   `json:"pageSize"`
}

// NewPaginationMetadata echoes currentPage and pageSize as given; callers clamp them beforehand.
func NewPaginationMetadata(totalItemCount int64, pageSize, currentPage int) PaginationMetadata {
	return PaginationMetadata{
		TotalItemCount: totalItemCount,
		TotalPages:     CalculateTotalPages(totalItemCount, pageSize),
		CurrentPage:    currentPage,
		PageSize:       pageSize,
	}
}
