// Package memory provides in-memory implementations of the domain
// repositories. The *gorm.DB argument is ignored, which lets usecases run
// against them in unit tests without a database.
//
// The package is for tests only. Production wiring in cmd/bootstrap uses the
// gorm repositories in internal/repository.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation mimics the error PostgreSQL returns for a duplicate key.
func uniqueViolation(table, column string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint \"%s_%s_key\"", table, column),
		TableName:      table,
		ConstraintName: fmt.Sprintf("%s_%s_key", table, column),
	}
}

// base carries the lock and the injectable failure shared by every repository.
type base struct {
	mu sync.Mutex
	// Err, when set, is returned by every call.
	Err error
}

func groupBy[T any](items []T, column string, extract map[string]func(T) string) (map[string]int64, error) {
	fn, ok := extract[column]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	counts := make(map[string]int64)
	for _, item := range items {
		if v := fn(item); v != "" {
			counts[v]++
		}
	}
	return counts, nil
}

func sortFold[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(key(items[i])) < strings.ToLower(key(items[j]))
	})
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
