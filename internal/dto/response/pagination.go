package response

import "movies-api/pkg/utils"

// PaginatedResponse carries one page of items. Handlers write Data as the body and
// Pagination as the X-Pagination header.
type PaginatedResponse[T any] struct {
	Data       []T                      `json:"data"`
	Pagination utils.PaginationMetadata `json:"pagination"`
}

func NewPaginatedResponse[T any](data []T, meta utils.PaginationMetadata) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResponse[T]{
		Data:       data,
		Pagination: meta,
	}
}
