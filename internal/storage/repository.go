// Package storage implements the RowStore port on SQLite. It keeps the
// row-store shape (full fetch, append, string-typed columns) so the rest of
// the system is oblivious to which backend is configured.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Trantoan12022004/chome2/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ sheets.RowStore = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FetchAll returns every row of the table in insertion order. All values come
// back as strings, matching the sheet backend.
func (s *SQLiteStore) FetchAll(ctx context.Context, table string) ([]sheets.Row, error) {
	cols, ok := sheets.Columns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(quoteAll(cols), ", "), table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	var out []sheets.Row
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dests := make([]any, len(cols))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		row := make(sheets.Row, len(cols))
		for i, c := range cols {
			row[c] = values[i].String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}
	return out, nil
}

func (s *SQLiteStore) Append(ctx context.Context, table string, row sheets.Row) error {
	cols, ok := sheets.Columns[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = "?"
		args[i] = row[c]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(quoteAll(cols), ", "), strings.Join(placeholders, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	slog.DebugContext(ctx, "Row appended to SQLite", "table", table)
	return nil
}

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = `"` + c + `"`
	}
	return out
}
