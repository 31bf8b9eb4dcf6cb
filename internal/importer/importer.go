// Package importer merges uploaded CSV documents into the vehicle inventory.
//
// Records are processed one at a time with best-effort isolation: a bad
// record increments the invalid counter and processing continues. Columns
// are located by header name, matched case-insensitively after trimming;
// "brand" is accepted as a synonym for "make" and unknown columns are
// ignored. The check-then-insert sequence is intentionally not wrapped in a
// transaction; concurrent imports can race (accepted limitation).
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vehicletracker/internal/vehicle"
)

// Inventory is the slice of the repository the importer needs. Tests supply
// an in-memory fake.
type Inventory interface {
	List(ctx context.Context) ([]vehicle.Vehicle, error)
	CreateWithCount(ctx context.Context, make, model string, year, count int) (int64, error)
}

// Summary aggregates the per-record outcomes of one import run.
type Summary struct {
	Imported int
	Skipped  int
	Invalid  int
}

// Message renders the single human-readable line returned to the client.
func (s Summary) Message() string {
	return fmt.Sprintf("Successfully imported %d new vehicles. Skipped %d existing vehicles. Ignored %d invalid rows.",
		s.Imported, s.Skipped, s.Invalid)
}

// Run parses the CSV document in r and merges it into inv.
//
// A parse failure of the whole document is returned as an error (the request
// is rejected before any record is applied); the caller can detect it via
// *csv.ParseError. Everything after a successful parse is record-at-a-time:
// one bad row never stops the rest.
func Run(ctx context.Context, inv Inventory, r io.Reader) (Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as empty
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Summary{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Summary{}, nil
	}

	cols := headerIndex(records[0])

	// Seed the duplicate set from the current table so re-imports are
	// idempotent. Inserted rows are added as we go, which also catches
	// duplicates within the file itself.
	existing, err := inv.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load existing vehicles: %w", err)
	}
	seen := make(map[uint64]struct{}, len(existing))
	for _, v := range existing {
		seen[Key(v.Make, v.Model, strconv.Itoa(v.Year))] = struct{}{}
	}

	var sum Summary
	for _, rec := range records[1:] {
		if blankRow(rec) {
			continue
		}

		mk := CleanField(field(rec, cols, "make"))
		model := CleanField(field(rec, cols, "model"))
		yearText := strings.TrimSpace(field(rec, cols, "year"))
		countText := strings.TrimSpace(field(rec, cols, "count"))

		if mk == "" || model == "" || yearText == "" {
			sum.Invalid++
			continue
		}
		year, err := strconv.Atoi(yearText)
		if err != nil {
			// Non-numeric year passes the emptiness check but cannot be
			// stored; counted as invalid rather than guessed at.
			sum.Invalid++
			continue
		}

		key := Key(mk, model, yearText)
		if _, dup := seen[key]; dup {
			sum.Skipped++
			continue
		}

		count := 0
		if countText != "" {
			if n, err := strconv.Atoi(countText); err == nil {
				count = n
			}
		}

		if _, err := inv.CreateWithCount(ctx, mk, model, year, count); err != nil {
			sum.Invalid++
			continue
		}
		seen[key] = struct{}{}
		sum.Imported++
	}
	return sum, nil
}

// headerIndex maps canonical column names to their position in the header
// row. First occurrence wins; unrecognized headers are dropped.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "brand" {
			name = "make"
		}
		switch name {
		case "make", "model", "year", "count":
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func blankRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
