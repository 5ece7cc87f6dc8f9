package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxLimit = 100

// PaginationParams represents pagination query parameters
type PaginationParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
	HasMore     bool  `json:"has_more"`
}

// GetPaginationParams extracts pagination parameters from query string.
// defaultLimit is the page size each resource lists with when ?limit is absent.
func GetPaginationParams(c *fiber.Ctx, defaultLimit int) PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search", ""),
	}
}

// Offset calculates offset for SQL queries
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}

	lastPage := int(math.Ceil(float64(total) / float64(limit)))
	if lastPage < 1 {
		lastPage = 1
	}
	from := (page-1)*limit + 1
	to := page * limit

	if total == 0 {
		from = 0
		to = 0
	} else if to > int(total) {
		to = int(total)
	}

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		LastPage:    lastPage,
		From:        from,
		To:          to,
		HasMore:     page < lastPage,
	}
}

// PaginatedResponse wraps a page of rows under key together with its metadata.
func PaginatedResponse(c *fiber.Ctx, message, key string, rows interface{}, meta PaginationMeta) error {
	return SuccessResponse(c, message, fiber.Map{
		key:          rows,
		"pagination": meta,
	})
}
