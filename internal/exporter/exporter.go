// Package exporter serializes the inventory as downloadable CSV text.
package exporter

import (
	"fmt"
	"io"
	"strings"

	"vehicletracker/internal/vehicle"
)

// Filename is the fixed attachment name served by the export endpoint.
const Filename = "vehicles_export.csv"

// Header is the fixed first line of every export.
const Header = "ID,Make,Model,Year,Count"

// Write emits the fixed header plus one comma-joined line per vehicle.
// Fields are written literally with no quoting, so embedded commas in make
// or model produce a malformed line. That is the documented export format,
// kept as-is; re-importing such a file relies on the importer's tolerance
// for ragged rows.
func Write(w io.Writer, vehicles []vehicle.Vehicle) error {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteByte('\n')
	for _, v := range vehicles {
		fmt.Fprintf(&sb, "%d,%s,%s,%d,%d\n", v.ID, v.Make, v.Model, v.Year, v.Count)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
