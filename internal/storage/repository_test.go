package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Trantoan12022004/chome2/internal/sheets"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chome.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteAppendAndFetchAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rows, err := store.FetchAll(ctx, sheets.TableUsers)
	if err != nil {
		t.Fatalf("fetch empty table: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}

	for _, u := range []sheets.Row{
		{"id": "1", "name": "A", "email": "a@example.com", "password": "x", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "2", "name": "B", "email": "b@example.com", "password": "y", "created_at": "2024-01-02T00:00:00Z"},
	} {
		if err := store.Append(ctx, sheets.TableUsers, u); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	rows, err = store.FetchAll(ctx, sheets.TableUsers)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["id"] != "1" || rows[1]["id"] != "2" {
		t.Errorf("rows out of append order: %v", rows)
	}
	if rows[0]["email"] != "a@example.com" {
		t.Errorf("column mapped wrong: %v", rows[0])
	}
}

func TestSQLiteUnknownTable(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.FetchAll(context.Background(), "bogus"); err == nil {
		t.Error("fetch of unknown table succeeded")
	}
	if err := store.Append(context.Background(), "bogus", sheets.Row{}); err == nil {
		t.Error("append to unknown table succeeded")
	}
}
