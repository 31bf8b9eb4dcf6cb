// Package mssql provides an alternative networked backend, registered under
// the kind "mssql". SQL Server uses @pN placeholders and does not implement
// LastInsertId, so inserts read SCOPE_IDENTITY() in the same batch.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"vehicletracker/internal/storage"
)

const Kind = "mssql"

func init() {
	storage.Register(Kind, open)
	storage.RegisterSchema(Kind, ensureSchema)
}

func open(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	return storage.OpenSQL(ctx, "sqlserver", cfg.DSN, Kind, storage.AtP, insertID)
}

func insertID(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var id int64
	q := query + "; SELECT CAST(SCOPE_IDENTITY() AS BIGINT)"
	if err := db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("mssql: insert: %w", err)
	}
	return id, nil
}

func ensureSchema(ctx context.Context, s storage.Store) error {
	ddl := `
	IF OBJECT_ID('vehicles', 'U') IS NULL
	CREATE TABLE vehicles (
		id BIGINT IDENTITY(1,1) PRIMARY KEY,
		make NVARCHAR(MAX),
		model NVARCHAR(MAX),
		year INT,
		count INT DEFAULT 0
	)`
	_, err := s.Exec(ctx, ddl)
	return err
}
