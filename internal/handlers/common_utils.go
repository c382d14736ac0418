package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination holds parsed page/page_size/order query parameters.
type pagination struct {
	Page       int
	PageSize   int
	OrderField string
	OrderType  string
}

func (p pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p pagination) Order() string {
	return p.OrderField + " " + p.OrderType
}

// parsePagination reads pagination query parameters with the usual defaults.
// orderFields whitelists sortable columns; the first entry is the default.
func parsePagination(c *gin.Context, orderFields ...string) pagination {
	p := pagination{Page: 1, PageSize: 10, OrderField: "id", OrderType: "desc"}
	if len(orderFields) > 0 {
		p.OrderField = orderFields[0]
	}

	if q := c.Query("page"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
			p.Page = parsed
		}
	}
	if q := c.Query("page_size"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 && parsed <= 100 {
			p.PageSize = parsed
		}
	}
	if q := c.Query("order_field"); q != "" {
		for _, f := range orderFields {
			if q == f {
				p.OrderField = q
				break
			}
		}
	}
	if q := c.Query("order_type"); q == "asc" || q == "desc" {
		p.OrderType = q
	}
	return p
}

// paginated wraps a result page with the standard pagination envelope.
func paginated(data interface{}, p pagination, total int64) gin.H {
	totalPages := (total + int64(p.PageSize) - 1) / int64(p.PageSize)
	return gin.H{
		"data": data,
		"pagination": gin.H{
			"current_page": p.Page,
			"page_size":    p.PageSize,
			"total_pages":  totalPages,
			"total_count":  total,
			"has_next":     p.Page < int(totalPages),
			"has_prev":     p.Page > 1,
		},
	}
}
