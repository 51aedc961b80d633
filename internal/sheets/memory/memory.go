// Package memory provides an in-memory RowStore used by tests and local
// development. It mirrors the append-order semantics of the sheet backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Trantoan12022004/chome2/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	tables map[string][]sheets.Row
}

func New() *Store {
	return &Store{tables: make(map[string][]sheets.Row)}
}

// Seed replaces the content of a table. Intended for test fixtures.
func (s *Store) Seed(table string, rows []sheets.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]sheets.Row, 0, len(rows))
	for _, r := range rows {
		copied = append(copied, cloneRow(r))
	}
	s.tables[table] = copied
}

func (s *Store) FetchAll(_ context.Context, table string) ([]sheets.Row, error) {
	if _, ok := sheets.Columns[table]; !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	out := make([]sheets.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, cloneRow(r))
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, table string, row sheets.Row) error {
	if _, ok := sheets.Columns[table]; !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], cloneRow(row))
	return nil
}

// Len reports the number of rows in a table.
func (s *Store) Len(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

func cloneRow(r sheets.Row) sheets.Row {
	c := make(sheets.Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
