package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Trantoan12022004/chome2/internal/config"
	"github.com/Trantoan12022004/chome2/internal/sheets"
)

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{SQLiteBackend, SheetsBackend, MemoryBackend} {
		if !valid.IsValid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	if Type("postgres").IsValid() {
		t.Error("postgres should not be valid")
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "/tmp/x.db"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend {
		t.Errorf("expected sqlite, got %s", cfg.Type)
	}
	if cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("unexpected db path %s", cfg.SQLiteDBPath)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Error("expected error for invalid backend type")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if result.Store == nil {
		t.Fatal("expected a store")
	}
	if result.Cleanup != nil {
		t.Error("memory backend needs no cleanup")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer result.Cleanup()

	ctx := context.Background()
	if err := result.Store.Append(ctx, sheets.TableUsers, sheets.Row{
		"id": "1", "name": "Anna", "email": "anna@example.com", "password": "x", "created_at": "2025-01-01T00:00:00Z",
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	rows, err := result.Store.FetchAll(ctx, sheets.TableUsers)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Anna" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestCreateBackendRejectsInvalidType(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Error("expected error for invalid type")
	}
}
