// Package storage contains the backend-agnostic store contract plus the
// factory and DDL registration machinery that concrete backends hook into at
// init time. The rest of the application depends only on this package; which
// engines are actually linked into a binary is decided by the wiring package
// (see storage/all).
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Rows is the minimal result-set cursor shared by all backends. *sql.Rows
// satisfies it directly; the pgx backend wraps pgx.Rows to match.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Store is a single open handle to one backend. Query templates are always
// written with '?' placeholders; each implementation rebinds them to its
// native positional syntax before execution, so callers never branch on the
// engine.
type Store interface {
	// Exec runs a statement and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Insert runs an INSERT and returns the generated row id.
	Insert(ctx context.Context, query string, args ...any) (int64, error)

	// Query runs a SELECT and returns a cursor the caller must Close.
	Query(ctx context.Context, query string, args ...any) (Rows, error)

	// Kind reports the backend name the store was registered under.
	Kind() string

	Close(ctx context.Context) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Kind string // registered backend name, e.g. "sqlite" or "postgres"
	DSN  string // engine-specific connection string or file path
}

// Factory constructs an open, pinged Store for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Store, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. Backend
// packages call this from init(); importing storage/all pulls them all in.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// Open looks up the factory for cfg.Kind and invokes it.
func Open(ctx context.Context, cfg Config) (Store, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, for diagnostics.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	return out
}
