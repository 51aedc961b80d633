// Package backend selects and constructs the row store implementation from
// configuration. All three backends satisfy the same port, so the rest of
// the application never knows which one it is talking to.
package backend

import (
	"context"
	"fmt"

	"github.com/Trantoan12022004/chome2/internal/config"
	"github.com/Trantoan12022004/chome2/internal/sheets"
)

// Type names a row store implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown. May be nil.
type CleanupFunc func() error

// Result is a constructed row store with its cleanup hook.
type Result struct {
	Store   sheets.RowStore
	Cleanup CleanupFunc
}

// Config holds everything needed to construct any of the backends.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets uses environment credentials, only the selection
	// lives here.
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Factory creates row stores from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
