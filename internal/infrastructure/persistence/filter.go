package persistence

import (
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// paginate applies page-based offset and limit from the filter
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// orderedBy applies a whitelisted ORDER BY clause from the filter, falling
// back to defaultField when the requested field is not allowed
func orderedBy(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}
