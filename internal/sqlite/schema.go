package sqlite

// Schema DDL. Balances are stored as decimal TEXT because SQLite integers
// cannot hold the full uint64 range.
const (
	createGames = `CREATE TABLE games (
    game_id TEXT PRIMARY KEY,
    state TEXT NOT NULL,
    start_balance TEXT NOT NULL,
    balance TEXT NOT NULL,
    current_position INTEGER NOT NULL,
    target_position INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    ended_at TEXT
);`

	idxGamesState   = `CREATE INDEX idx_games_state ON games(state);`
	idxGamesCreated = `CREATE INDEX idx_games_created ON games(created_at);`
)

// schemaStatements lists DDL in execution order.
var schemaStatements = []string{
	createGames,
	idxGamesState,
	idxGamesCreated,
}

// gameColumns is the column list shared by every games query.
const gameColumns = "game_id, state, start_balance, balance, current_position, target_position, rounds, created_at, ended_at"
