// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"busca"`
}

type PaginationResult struct {
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	TotalItems  int64       `json:"total_items"`
	TotalPages  int         `json:"total_pages"`
	Data        interface{} `json:"data"`
}

// GetPaginationParams reads page, per_page and busca from the query
// string. Pages are 1-indexed.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("busca")

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	return PaginationParams{
		Page:    page,
		PerPage: perPage,
		Search:  search,
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PerPage
	return db.Offset(offset).Limit(params.PerPage)
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.PerPage)))

	return PaginationResult{
		CurrentPage: params.Page,
		PerPage:     params.PerPage,
		TotalItems:  total,
		TotalPages:  totalPages,
		Data:        data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.TotalItems, 10))
	c.Header("X-Page", strconv.Itoa(result.CurrentPage))
	c.Header("X-Per-Page", strconv.Itoa(result.PerPage))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
