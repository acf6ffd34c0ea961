package repository

import (
	"fmt"

	"gorm.io/gorm"
)

type groupCount struct {
	Value string
	Total int64
}

// countGroupedBy runs a single GROUP BY over column. The column name is
// interpolated into SQL, so callers must only pass names from a fixed list.
func countGroupedBy(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	err := db.Model(model).
		Select(fmt.Sprintf("%s AS value, COUNT(*) AS total", column)).
		Where(fmt.Sprintf("%s IS NOT NULL", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Total
	}
	return counts, nil
}

func count(db *gorm.DB, model interface{}) (int64, error) {
	var total int64
	err := db.Model(model).Count(&total).Error
	return total, err
}
