package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// InsertIDFn lets a backend override how the generated id of an INSERT is
// obtained. SQLite and MySQL report it through sql.Result.LastInsertId; SQL
// Server needs a follow-up SCOPE_IDENTITY() read, which its package supplies
// here.
type InsertIDFn func(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error)

// SQLStore is the portable Store implementation shared by every engine that
// speaks database/sql. Backend packages open the driver, pick the placeholder
// style, and optionally override id retrieval; everything else is common.
type SQLStore struct {
	db       *sql.DB
	kind     string
	style    PlaceholderStyle
	insertID InsertIDFn
}

// OpenSQL opens a database/sql handle, pings it with a short timeout to fail
// fast on a bad DSN, and wraps it in a SQLStore. insertID may be nil, in
// which case sql.Result.LastInsertId is used.
func OpenSQL(ctx context.Context, driver, dsn, kind string, style PlaceholderStyle, insertID InsertIDFn) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", kind, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping: %w", kind, err)
	}
	return &SQLStore{db: db, kind: kind, style: style, insertID: insertID}, nil
}

// DB exposes the underlying handle for backend packages that need to run
// engine-specific statements (PRAGMAs, identity reads).
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, Rebind(s.style, query), args...)
	if err != nil {
		return 0, fmt.Errorf("%s: exec: %w", s.kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", s.kind, err)
	}
	return n, nil
}

func (s *SQLStore) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	bound := Rebind(s.style, query)
	if s.insertID != nil {
		return s.insertID(ctx, s.db, bound, args...)
	}
	res, err := s.db.ExecContext(ctx, bound, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: insert: %w", s.kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", s.kind, err)
	}
	return id, nil
}

func (s *SQLStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, Rebind(s.style, query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", s.kind, err)
	}
	return rows, nil
}

func (s *SQLStore) Kind() string { return s.kind }

func (s *SQLStore) Close(ctx context.Context) error { return s.db.Close() }
