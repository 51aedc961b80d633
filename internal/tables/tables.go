// Package tables maps RowStore rows to domain types and owns identifier
// assignment. Identifiers follow the max-plus-one policy over a fresh full
// fetch; each table serializes compute-then-append behind its own lock so
// concurrent in-process creates cannot mint the same id. Concurrent writers
// in other processes are not protected against; the store itself enforces
// no uniqueness.
package tables

import (
	"fmt"
	"strconv"

	"github.com/Trantoan12022004/chome2/internal/core"
)

func parseID(raw, table string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("table %s: bad id %q", table, raw)
	}
	return id, nil
}

func parseRef(raw, table, column string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("table %s: bad %s reference %q", table, column, raw)
	}
	return id, nil
}

func parseAmount(raw, table string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		return core.Money{}, fmt.Errorf("table %s: bad amount %q: %w", table, raw, err)
	}
	return core.Money{Cents: cents}, nil
}

func maxID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
