package response

import "flight-review/pkg/utils"

// PaginatedResponse mirrors a 0-based page of results.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalPages int    `json:"total_pages"`
	Sort       string `json:"sort"`
}

func NewPaginatedResponse[T any](data []T, page, size int, total int64, sort string) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Page:       page,
			Size:       size,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, size),
			Sort:       sort,
		},
	}
}
