package memory

import (
	"context"
	"testing"

	"github.com/Trantoan12022004/chome2/internal/sheets"
)

func TestAppendAndFetchAllPreservesOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		if err := s.Append(ctx, sheets.TableUsers, sheets.Row{"id": id, "name": "u" + id}); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	rows, err := s.FetchAll(ctx, sheets.TableUsers)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"1", "2", "3"} {
		if rows[i]["id"] != want {
			t.Errorf("row %d id = %q, want %q", i, rows[i]["id"], want)
		}
	}
}

func TestUnknownTableRejected(t *testing.T) {
	s := New()
	if _, err := s.FetchAll(context.Background(), "nope"); err == nil {
		t.Error("fetch of unknown table succeeded")
	}
	if err := s.Append(context.Background(), "nope", sheets.Row{}); err == nil {
		t.Error("append to unknown table succeeded")
	}
}

func TestFetchAllReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.Append(ctx, sheets.TableUsers, sheets.Row{"id": "1", "name": "A"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, _ := s.FetchAll(ctx, sheets.TableUsers)
	rows[0]["name"] = "mutated"

	again, _ := s.FetchAll(ctx, sheets.TableUsers)
	if again[0]["name"] != "A" {
		t.Errorf("store row mutated through fetched copy: %q", again[0]["name"])
	}
}
