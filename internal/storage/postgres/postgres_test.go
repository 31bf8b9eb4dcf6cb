package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakePool is a hermetic poolLike double recording the SQL it receives.
type fakePool struct {
	lastSQL  string
	lastArgs []any
	execTag  pgconn.CommandTag
	rowID    int64
}

func (f *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.execTag, nil
}

func (f *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return fakeRows{}, nil
}

func (f *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return fakeRow{id: f.rowID}
}

func (f *fakePool) Ping(ctx context.Context) error { return nil }
func (f *fakePool) Close() {}

type fakeRow struct{ id int64 }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.id
	return nil
}

// fakeRows is an empty pgx.Rows result set.
type fakeRows struct{}

func (fakeRows) Close() {}
func (fakeRows) Err() error { return nil }
func (fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fakeRows) Next() bool { return false }
func (fakeRows) Scan(dest ...any) error { return nil }
func (fakeRows) Values() ([]any, error) { return nil, nil }
func (fakeRows) RawValues() [][]byte { return nil }
func (fakeRows) Conn() *pgx.Conn { return nil }

func TestExecRebindsAndReportsAffected(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execTag: pgconn.NewCommandTag("UPDATE 1")}
	s := newStoreFromPool(pool)

	n, err := s.Exec(context.Background(),
		"UPDATE vehicles SET count = count + 1 WHERE id = ?", int64(7))
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if n != 1 {
		t.Fatalf("affected = %d, want 1", n)
	}
	want := "UPDATE vehicles SET count = count + 1 WHERE id = $1"
	if pool.lastSQL != want {
		t.Fatalf("sql = %q, want %q", pool.lastSQL, want)
	}
}

func TestInsertAppendsReturning(t *testing.T) {
	t.Parallel()
	pool := &fakePool{rowID: 42}
	s := newStoreFromPool(pool)

	id, err := s.Insert(context.Background(),
		"INSERT INTO vehicles (make, model, year, count) VALUES (?, ?, ?, ?)",
		"Toyota", "Corolla", 2020, 0)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	want := "INSERT INTO vehicles (make, model, year, count) VALUES ($1, $2, $3, $4) RETURNING id"
	if pool.lastSQL != want {
		t.Fatalf("sql = %q, want %q", pool.lastSQL, want)
	}
}

func TestQueryWrapsRows(t *testing.T) {
	t.Parallel()
	pool := &fakePool{}
	s := newStoreFromPool(pool)

	rows, err := s.Query(context.Background(), "SELECT id FROM vehicles WHERE id = ?", int64(1))
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer rows.Close()
	if rows.Next() {
		t.Fatal("empty result set should not advance")
	}
	if pool.lastSQL != "SELECT id FROM vehicles WHERE id = $1" {
		t.Fatalf("sql = %q", pool.lastSQL)
	}
}
