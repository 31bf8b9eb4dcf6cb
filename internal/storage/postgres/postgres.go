// Package postgres provides the networked backend, registered under the kind
// "postgres". It uses pgx v5 through a pgxpool so one pool serves the whole
// process lifetime, and rebinds '?' templates to $n placeholders.
//
// The poolLike seam mirrors the subset of *pgxpool.Pool we use so the adapter
// can be unit tested without a live server.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vehicletracker/internal/storage"
)

const Kind = "postgres"

func init() {
	storage.Register(Kind, open)
	storage.RegisterSchema(Kind, ensureSchema)
}

type poolLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type pgStore struct{ pool poolLike }

func open(ctx context.Context, cfg storage.Config) (storage.Store, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &pgStore{pool: pool}, nil
}

func (p *pgStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := p.pool.Exec(ctx, storage.Rebind(storage.Dollar, query), args...)
	if err != nil {
		return 0, fmt.Errorf("postgres: exec: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Insert appends RETURNING id so the generated key comes back in the same
// round trip; Postgres has no LastInsertId equivalent.
func (p *pgStore) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	bound := storage.Rebind(storage.Dollar, query) + " RETURNING id"
	var id int64
	if err := p.pool.QueryRow(ctx, bound, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("postgres: insert: %w", err)
	}
	return id, nil
}

func (p *pgStore) Query(ctx context.Context, query string, args ...any) (storage.Rows, error) {
	rows, err := p.pool.Query(ctx, storage.Rebind(storage.Dollar, query), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", err)
	}
	return pgRows{rows}, nil
}

func (p *pgStore) Kind() string { return Kind }

func (p *pgStore) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// pgRows adapts pgx.Rows to storage.Rows (pgx's Close returns nothing).
type pgRows struct{ rows pgx.Rows }

func (r pgRows) Next() bool { return r.rows.Next() }
func (r pgRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgRows) Err() error { return r.rows.Err() }
func (r pgRows) Close() error {
	r.rows.Close()
	return nil
}

func ensureSchema(ctx context.Context, s storage.Store) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		make TEXT,
		model TEXT,
		year INTEGER,
		count INTEGER DEFAULT 0
	)`
	_, err := s.Exec(ctx, ddl)
	return err
}

// newStoreFromPool constructs a pgStore from a poolLike fake. Test use only.
func newStoreFromPool(p poolLike) *pgStore { return &pgStore{pool: p} }
