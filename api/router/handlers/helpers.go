package handlers

import (
	"net/http"
	"strconv"
)

// parsePagination reads page/limit query parameters with sane defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 50
	if p := r.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	return page, limit
}

func totalPages(totalRecords int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((totalRecords + int64(limit) - 1) / int64(limit))
}
