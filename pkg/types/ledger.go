package types

import "errors"

// Ledger records finished games and answers queries about them.
// Callers attach to a backend, record and query games, and detach when done.
type Ledger interface {
	// Attach connects the Ledger to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, every other operation returns ErrLedgerDetached.
	Detach() error

	// Record persists a finished game. When GameID is empty a new UUID v7 is
	// generated. Returns the ID used.
	Record(g *Game) (string, error)

	// Get returns the game with the given ID or ErrNotFound.
	Get(id string) (*Game, error)

	// List returns recorded games matching filter, most recent first.
	List(filter Filter) ([]*Game, error)

	// Summarize aggregates every recorded game.
	Summarize() (Summary, error)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	State string
	Limit int
}

// Summary aggregates the ledger.
type Summary struct {
	Games       int    `json:"games"`
	Lost        int    `json:"lost"`
	Stopped     int    `json:"stopped"`
	Rounds      int    `json:"rounds"`
	BestBalance uint64 `json:"best_balance"`
}

// Ledger lifecycle errors.
var (
	ErrLedgerDetached  = errors.New("ledger is detached")
	ErrAlreadyAttached = errors.New("ledger is already attached")
)

// Ledger operation errors.
var (
	ErrNotFound      = errors.New("game not found")
	ErrInvalidID     = errors.New("invalid game ID")
	ErrInvalidData   = errors.New("invalid game data")
	ErrInvalidFilter = errors.New("invalid filter value")
)
