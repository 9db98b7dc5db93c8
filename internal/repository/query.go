package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

// Fixed page sizes per list
const (
	ClientPageSize            = 15
	LocationPageSize          = 15
	ProjectPageSize           = 15
	ContactSubmissionPageSize = 20
)

// ClampPage keeps page within 1..domain.MaxPage
func ClampPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > domain.MaxPage:
		return domain.MaxPage
	}
	return page
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for ilike. LIKE
// wildcards in search match literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// ilike is a case-insensitive match of column against a likePattern
func ilike(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// paginate applies offset and limit for a 1-based page
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	offset := (ClampPage(page) - 1) * pageSize
	return query.Offset(offset).Limit(pageSize)
}

type groupCount struct {
	GroupKey string
	Total    int64
}

// countGrouped runs query grouped by column and returns counts keyed by the
// column value as text
func countGrouped(query *gorm.DB, column string) (map[string]int64, error) {
	var rows []groupCount
	err := query.
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}

// countsByID re-keys grouped counts by UUID, filling zero for ids with no rows
func countsByID(counts map[string]int64, ids []uuid.UUID) map[uuid.UUID]int64 {
	result := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		result[id] = counts[id.String()]
	}
	return result
}
