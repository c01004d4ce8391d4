package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/tecpap/backend/internal/domain/shared"
)

// orderableColumns whitelists what callers may sort by. Anything else falls
// back to created_at to keep the filter out of SQL injection territory.
var orderableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"confidence":   true,
	"name":         true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	column := filter.OrderBy
	if !orderableColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}
