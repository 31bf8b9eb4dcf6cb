package storage

import (
	"context"
	"fmt"
	"sync"
)

// SchemaFn applies a backend's DDL (typically CREATE TABLE IF NOT EXISTS)
// through the already-open store. Each backend registers its own dialect of
// the vehicles table at init time, since autoincrement syntax differs per
// engine.
type SchemaFn func(ctx context.Context, s Store) error

var (
	schemaMu  sync.RWMutex
	schemaFns = map[string]SchemaFn{}
)

// RegisterSchema installs the schema bootstrapper for a backend kind.
func RegisterSchema(kind string, fn SchemaFn) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaFns[kind] = fn
}

// EnsureSchema locates the bootstrapper for the store's kind and invokes it.
// Callers treat a failure here as fatal: serving without the vehicles table
// is not an option.
func EnsureSchema(ctx context.Context, s Store) error {
	schemaMu.RLock()
	fn, ok := schemaFns[s.Kind()]
	schemaMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: no schema bootstrapper registered for kind %q", s.Kind())
	}
	return fn(ctx, s)
}
