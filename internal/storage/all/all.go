// Package all wires every built-in storage backend into the factory. It
// exists purely for side effects: a blank import of this package runs each
// backend's init, which registers its factory and schema bootstrapper.
//
// A binary that should support only a subset of engines can blank-import the
// individual backend packages instead.
package all

import (
	_ "vehicletracker/internal/storage/mssql"
	_ "vehicletracker/internal/storage/mysql"
	_ "vehicletracker/internal/storage/postgres"
	_ "vehicletracker/internal/storage/sqlite"
)
