package storage

import (
	"context"
	"errors"
	"testing"
)

// stubStore is the minimal Store used to exercise the registries.
type stubStore struct {
	kind      string
	schemaDDL []string
}

func (s *stubStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	s.schemaDDL = append(s.schemaDDL, query)
	return 0, nil
}
func (s *stubStore) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, nil
}
func (s *stubStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return nil, errors.New("not implemented")
}
func (s *stubStore) Kind() string { return s.kind }
func (s *stubStore) Close(ctx context.Context) error { return nil }

func TestOpenUnknownKind(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{Kind: "no-such-engine"}); err == nil {
		t.Fatal("Open should fail for an unregistered kind")
	}
}

func TestRegisterAndOpen(t *testing.T) {
	want := &stubStore{kind: "stub-open"}
	Register("stub-open", func(ctx context.Context, cfg Config) (Store, error) {
		if cfg.DSN != "dsn-under-test" {
			t.Fatalf("factory got DSN %q", cfg.DSN)
		}
		return want, nil
	})

	got, err := Open(context.Background(), Config{Kind: "stub-open", DSN: "dsn-under-test"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != want {
		t.Fatalf("Open returned %v, want the registered store", got)
	}
}

func TestEnsureSchema(t *testing.T) {
	s := &stubStore{kind: "stub-schema"}
	RegisterSchema("stub-schema", func(ctx context.Context, st Store) error {
		_, err := st.Exec(ctx, "CREATE TABLE IF NOT EXISTS vehicles (id INTEGER)")
		return err
	})

	if err := EnsureSchema(context.Background(), s); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(s.schemaDDL) != 1 {
		t.Fatalf("schema bootstrapper ran %d statements, want 1", len(s.schemaDDL))
	}
}

func TestEnsureSchemaUnknownKind(t *testing.T) {
	t.Parallel()
	s := &stubStore{kind: "never-registered"}
	if err := EnsureSchema(context.Background(), s); err == nil {
		t.Fatal("EnsureSchema should fail when no bootstrapper is registered")
	}
}
