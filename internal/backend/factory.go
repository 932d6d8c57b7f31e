// Package backend selects and constructs the row store implementation.
package backend

import (
	"context"
	"fmt"

	"spendbot/internal/config"
	"spendbot/internal/log"
	"spendbot/internal/rowstore"
	gsheet "spendbot/internal/rowstore/google"
	"spendbot/internal/rowstore/memory"
	"spendbot/internal/rowstore/sqlite"
)

// Type names a row store backend.
type Type string

const (
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) IsValid() bool {
	switch t {
	case SheetsBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// CleanupFunc releases backend resources; nil when nothing needs closing.
type CleanupFunc func() error

// Result carries the constructed store and its cleanup.
type Result struct {
	Store   rowstore.Store
	Cleanup CleanupFunc
}

// Open builds the row store named by the application config.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBackend)
	t := Type(cfg.DataBackend)
	switch t {
	case SheetsBackend:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets store: %w", err)
		}
		logger.Info("Initialized Google Sheets backend",
			log.FieldBackend, string(SheetsBackend),
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &Result{Store: cli}, nil

	case SQLiteBackend:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		store := memory.NewFromFiles(cfg.DataDirectory)
		logger.Info("Initialized memory backend", "data_directory", cfg.DataDirectory)
		return &Result{Store: store}, nil
	}
	return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
}
