package repository

import "gorm.io/gorm"

// GroupCounter is implemented by every repository whose entity carries enum
// columns that statistics and reports aggregate over.
type GroupCounter interface {
	Count(db *gorm.DB) (int64, error)
	// CountGroupedBy returns the number of rows per distinct value of column.
	// Values with no rows are absent from the result.
	CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error)
}
