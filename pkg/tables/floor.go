// Package tables implements lookups over bracket tables sorted by an ascending
// key, such as benefit scales keyed by income or parameters keyed by year.
package tables

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Floor returns the row with the highest key less than or equal to x.
// rows must be sorted ascending by key. ok is false when the table is empty
// or x lies below the first bracket. The returned index is -1 in that case.
func Floor[T any](rows []T, key func(T) decimal.Decimal, x decimal.Decimal) (T, int, bool) {
	var zero T
	// first index whose key is strictly greater than x
	i := sort.Search(len(rows), func(i int) bool {
		return key(rows[i]).GreaterThan(x)
	})
	if i == 0 {
		return zero, -1, false
	}
	return rows[i-1], i - 1, true
}

// FloorOrFirst behaves like Floor but clamps values below the first bracket to
// the first row. It only reports ok=false for an empty table.
func FloorOrFirst[T any](rows []T, key func(T) decimal.Decimal, x decimal.Decimal) (T, int, bool) {
	if row, i, ok := Floor(rows, key, x); ok {
		return row, i, true
	}
	if len(rows) == 0 {
		var zero T
		return zero, -1, false
	}
	return rows[0], 0, true
}

// FloorInt is Floor for integer keys.
func FloorInt[T any](rows []T, key func(T) int, x int) (T, int, bool) {
	var zero T
	i := sort.Search(len(rows), func(i int) bool {
		return key(rows[i]) > x
	})
	if i == 0 {
		return zero, -1, false
	}
	return rows[i-1], i - 1, true
}

// IsSorted reports whether rows are in non-decreasing key order.
func IsSorted[T any](rows []T, key func(T) decimal.Decimal) bool {
	for i := 1; i < len(rows); i++ {
		if key(rows[i]).LessThan(key(rows[i-1])) {
			return false
		}
	}
	return true
}
