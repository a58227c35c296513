package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// PublicPageSize is the page size of the anonymous article listing.
	PublicPageSize = 10
	// AdminPageSize is the page size of the admin listings.
	AdminPageSize = 20
)

// Page is an offset-indexed subset of a larger result set, with total-count
// metadata.
type Page struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
}

// PageParam reads the ?page query parameter, defaulting to the first page.
func PageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset converts a 1-based page number into a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

func NewPage(items interface{}, page, pageSize int, totalItems int64) Page {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
