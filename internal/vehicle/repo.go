package vehicle

import (
	"context"
	"fmt"

	"vehicletracker/internal/storage"
)

// Repository implements the vehicle operations over a storage.Store. Query
// templates use '?' placeholders throughout; the store rebinds them for its
// engine.
type Repository struct {
	store storage.Store
}

func NewRepository(s storage.Store) *Repository {
	return &Repository{store: s}
}

// List returns all rows. Order is backend-dependent; callers must not rely
// on it.
func (r *Repository) List(ctx context.Context) ([]Vehicle, error) {
	rows, err := r.store.Query(ctx, "SELECT id, make, model, year, count FROM vehicles")
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]Vehicle, 0)
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Count); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// Create inserts a vehicle with count 0 and returns the generated id. No
// field validation happens here; the API passes client input through as-is.
func (r *Repository) Create(ctx context.Context, make, model string, year int) (int64, error) {
	return r.CreateWithCount(ctx, make, model, year, 0)
}

// CreateWithCount inserts a vehicle with an explicit starting count. The CSV
// importer uses this when the file supplies a count column.
func (r *Repository) CreateWithCount(ctx context.Context, make, model string, year, count int) (int64, error) {
	id, err := r.store.Insert(ctx,
		"INSERT INTO vehicles (make, model, year, count) VALUES (?, ?, ?, ?)",
		make, model, year, count)
	if err != nil {
		return 0, fmt.Errorf("create vehicle: %w", err)
	}
	return id, nil
}

// Update overwrites make, model, and year for the given id. Count is never
// touched by this path. Updating a missing id is reported through the
// returned affected count (zero), not as an error; the HTTP layer treats
// that as success.
func (r *Repository) Update(ctx context.Context, id int64, make, model string, year int) (int64, error) {
	n, err := r.store.Exec(ctx,
		"UPDATE vehicles SET make = ?, model = ?, year = ? WHERE id = ?",
		make, model, year, id)
	if err != nil {
		return 0, fmt.Errorf("update vehicle %d: %w", id, err)
	}
	return n, nil
}

// Delete removes the row with the given id. Deleting a missing id is a
// no-op, not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.store.Exec(ctx, "DELETE FROM vehicles WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	return nil
}

// IncrementCount atomically bumps the popularity counter and reads back the
// new value. The UPDATE is a single statement, so concurrent increments rely
// on the engine's per-row atomicity. Returns ErrNotFound when no row matched.
func (r *Repository) IncrementCount(ctx context.Context, id int64) (int, error) {
	n, err := r.store.Exec(ctx, "UPDATE vehicles SET count = count + 1 WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("increment count for vehicle %d: %w", id, err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}

	rows, err := r.store.Query(ctx, "SELECT count FROM vehicles WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("read count for vehicle %d: %w", id, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("read count for vehicle %d: %w", id, err)
		}
		return 0, ErrNotFound
	}
	var count int
	if err := rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count for vehicle %d: %w", id, err)
	}
	return count, nil
}

// Analyze returns all vehicles plus the backend-computed total of all
// counts (0 for an empty table).
func (r *Repository) Analyze(ctx context.Context) (Analysis, error) {
	vehicles, err := r.List(ctx)
	if err != nil {
		return Analysis{}, err
	}

	rows, err := r.store.Query(ctx, "SELECT COALESCE(SUM(count), 0) FROM vehicles")
	if err != nil {
		return Analysis{}, fmt.Errorf("sum counts: %w", err)
	}
	defer rows.Close()
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return Analysis{}, fmt.Errorf("scan total count: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return Analysis{}, fmt.Errorf("sum counts: %w", err)
	}
	return Analysis{Vehicles: vehicles, TotalCount: total}, nil
}
