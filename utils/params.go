package utils

import (
	"net/http"
	"strconv"
)

type QueryOptions struct {
	Page     int
	Limit    int
	RoomType string
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	return QueryOptions{
		Page:     page,
		Limit:    limit,
		RoomType: q.Get("room_type"),
	}
}

// Pagination metadata returned alongside paged listings.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int64 `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
}

func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Page: page, TotalPages: totalPages, TotalCount: totalCount}
}
