// Package sqlite provides the public API for the SQLite game ledger.
// This package exposes the factory function for creating SQLite ledgers
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/drum/internal/sqlite"
	"github.com/mesh-intelligence/drum/pkg/types"
)

// NewLedger creates a new SQLite ledger instance.
// The ledger is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	ledger := sqlite.NewLedger()
//	err := ledger.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".drum-db",
//	})
//	defer ledger.Detach()
func NewLedger() types.Ledger {
	return sqlite.NewBackend()
}
