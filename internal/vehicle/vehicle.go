// Package vehicle holds the inventory domain model and its repository over
// the storage layer.
package vehicle

import "errors"

// ErrNotFound reports an operation that targeted an id with no matching row.
var ErrNotFound = errors.New("vehicle not found")

// Vehicle is the sole persisted entity. Count is a popularity tally that
// starts at 0 and is only ever changed by the increment operation.
type Vehicle struct {
	ID    int64  `json:"id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}

// Analysis pairs the full inventory with the backend-computed sum of all
// counts.
type Analysis struct {
	Vehicles   []Vehicle `json:"vehicles"`
	TotalCount int       `json:"totalCount"`
}
