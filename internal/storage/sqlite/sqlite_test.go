package sqlite

import (
	"context"
	"testing"

	"vehicletracker/internal/storage"
)

func newMemStore(tb testing.TB) storage.Store {
	tb.Helper()
	ctx := context.Background()
	s, err := storage.Open(ctx, storage.Config{Kind: Kind, DSN: ":memory:"})
	if err != nil {
		tb.Fatalf("open sqlite :memory:: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close(ctx) })
	if err := storage.EnsureSchema(ctx, s); err != nil {
		tb.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestOpenEmptyDSN(t *testing.T) {
	t.Parallel()
	if _, err := storage.Open(context.Background(), storage.Config{Kind: Kind}); err == nil {
		t.Fatal("open with empty DSN should fail")
	}
}

// TestRoundTrip drives the full Store contract against a real in-memory
// database: schema bootstrap, insert id generation, affected-row counts, and
// row scanning.
func TestRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newMemStore(t)

	id, err := s.Insert(ctx,
		"INSERT INTO vehicles (make, model, year, count) VALUES (?, ?, ?, ?)",
		"Toyota", "Corolla", 2020, 0)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id <= 0 {
		t.Fatalf("insert returned id %d, want > 0", id)
	}

	n, err := s.Exec(ctx, "UPDATE vehicles SET count = count + 1 WHERE id = ?", id)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n != 1 {
		t.Fatalf("update affected %d rows, want 1", n)
	}

	n, err = s.Exec(ctx, "UPDATE vehicles SET count = count + 1 WHERE id = ?", id+99)
	if err != nil {
		t.Fatalf("exec missing id: %v", err)
	}
	if n != 0 {
		t.Fatalf("update of missing id affected %d rows, want 0", n)
	}

	rows, err := s.Query(ctx, "SELECT make, model, year, count FROM vehicles WHERE id = ?", id)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatalf("query returned no rows: %v", rows.Err())
	}
	var (
		mk, model   string
		year, count int
	)
	if err := rows.Scan(&mk, &model, &year, &count); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if mk != "Toyota" || model != "Corolla" || year != 2020 || count != 1 {
		t.Fatalf("got (%s, %s, %d, %d), want (Toyota, Corolla, 2020, 1)", mk, model, year, count)
	}
}

// TestSchemaIdempotent ensures bootstrap can run repeatedly without error.
func TestSchemaIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newMemStore(t)
	if err := storage.EnsureSchema(ctx, s); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}
