package persistence

import (
	"strings"

	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE wildcards in filter values so a needle
// containing % or _ matches those characters literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyListFilters applies the filter part of a list query. Columns come
// from validated ListQuery values, never raw request input.
func applyListFilters(query *gorm.DB, q shared.ListQuery) *gorm.DB {
	for column, needle := range q.Contains {
		query = query.Where(column+" ILIKE ?", "%"+likeEscaper.Replace(needle)+"%")
	}
	if len(q.Equals) > 0 {
		query = query.Where(map[string]any(q.Equals))
	}
	return query
}

// applyListQuery applies filtering, ordering and pagination. The id
// column breaks ties so page boundaries stay stable between requests.
func applyListQuery(query *gorm.DB, q shared.ListQuery) *gorm.DB {
	query = applyListFilters(query, q)

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	direction := "ASC"
	if q.Order == shared.OrderDesc {
		direction = "DESC"
	}
	query = query.Order(sortBy + " " + direction)
	if sortBy != "id" {
		query = query.Order("id ASC")
	}

	if q.Page > 0 && q.PageSize > 0 {
		query = query.Offset(q.Offset()).Limit(q.PageSize)
	}

	return query
}
