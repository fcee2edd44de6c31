// Package sqlite implements the SQLite game ledger for drum. JSONL files in
// the data directory are the source of truth; SQLite is rebuilt from them on
// every Attach and serves queries.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/drum/internal/paths"
	"github.com/mesh-intelligence/drum/pkg/types"
)

var _ types.Ledger = (*Backend)(nil)

// Backend implements the Ledger interface using SQLite as the query engine
// and a JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	files    paths.Ledger
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite database from
// games.jsonl, and marks the backend attached.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	files := paths.LedgerFiles(config.DataDir)
	if err := os.MkdirAll(files.Dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of games.jsonl; start from a fresh file.
	_ = os.Remove(files.Database)

	db, err := sql.Open("sqlite", files.Database)
	if err != nil {
		return fmt.Errorf("opening %s: %w", files.Database, err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := touch(files.Games); err != nil {
		db.Close()
		return err
	}

	if err := loadGames(db, files.Games); err != nil {
		db.Close()
		return fmt.Errorf("loading %s: %w", paths.GamesFileName, err)
	}

	config.DataDir = files.Dir
	b.db = db
	b.files = files
	b.config = config
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrLedgerDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// generateUUID generates a new UUID v7 for game IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
