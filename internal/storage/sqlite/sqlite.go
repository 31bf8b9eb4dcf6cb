// Package sqlite provides the embedded single-file backend used outside of
// production. It registers itself with the storage factory under the kind
// "sqlite"; the DSN is a file path or a modernc.org/sqlite connection string
// such as "file:vehicles.db?cache=shared".
package sqlite

import (
	"context"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // cgo-free SQLite driver

	"vehicletracker/internal/storage"
)

const Kind = "sqlite"

func init() {
	storage.Register(Kind, open)
	storage.RegisterSchema(Kind, ensureSchema)
}

func open(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	s, err := storage.OpenSQL(ctx, "sqlite", cfg.DSN, Kind, storage.Question, nil)
	if err != nil {
		return nil, err
	}
	if strings.Contains(cfg.DSN, ":memory:") {
		// Every pooled connection to a plain :memory: DSN would get its own
		// database; pin the pool to one connection.
		s.DB().SetMaxOpenConns(1)
	}
	// Best effort; the driver works without it.
	_, _ = s.DB().ExecContext(ctx, "PRAGMA foreign_keys = ON;")
	return s, nil
}

func ensureSchema(ctx context.Context, s storage.Store) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		make TEXT,
		model TEXT,
		year INTEGER,
		count INTEGER DEFAULT 0
	)`
	_, err := s.Exec(ctx, ddl)
	return err
}
