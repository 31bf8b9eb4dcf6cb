// Package mysql provides an alternative networked backend, registered under
// the kind "mysql". MySQL shares the generic database/sql path with SQLite:
// '?' placeholders pass through unchanged and LastInsertId works natively.
package mysql

import (
	"context"

	_ "github.com/go-sql-driver/mysql"

	"vehicletracker/internal/storage"
)

const Kind = "mysql"

func init() {
	storage.Register(Kind, open)
	storage.RegisterSchema(Kind, ensureSchema)
}

func open(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	return storage.OpenSQL(ctx, "mysql", cfg.DSN, Kind, storage.Question, nil)
}

func ensureSchema(ctx context.Context, s storage.Store) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		make TEXT,
		model TEXT,
		year INTEGER,
		count INTEGER DEFAULT 0
	)`
	_, err := s.Exec(ctx, ddl)
	return err
}
