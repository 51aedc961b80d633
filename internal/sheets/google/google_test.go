package google

import (
	"context"
	"testing"
)

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected error without GOOGLE_SPREADSHEET_ID")
	}
}

func TestTabNameOverride(t *testing.T) {
	t.Setenv("GOOGLE_USERS_SHEET_NAME", "Members")
	if got := tabName("GOOGLE_USERS_SHEET_NAME", "users"); got != "Members" {
		t.Errorf("tabName = %q, want Members", got)
	}
	if got := tabName("GOOGLE_UNSET_SHEET_NAME", "users"); got != "users" {
		t.Errorf("tabName fallback = %q, want users", got)
	}
}

func TestToStrings(t *testing.T) {
	got := toStrings([]any{" a ", 3, 1.5, true})
	want := []string{"a", "3", "1.5", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("toStrings[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAllEmpty(t *testing.T) {
	if !allEmpty([]string{"", "", ""}) {
		t.Error("allEmpty false for empty columns")
	}
	if allEmpty([]string{"", "x"}) {
		t.Error("allEmpty true for non-empty columns")
	}
}
