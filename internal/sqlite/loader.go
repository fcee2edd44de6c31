// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"fmt"
)

// loadGames inserts every game readGames accepts from path into the games
// table. Loading is transactional: all succeed or the database remains empty.
func loadGames(db *sql.DB, path string) error {
	games, err := readGames(path)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, g := range games {
		if err := upsertGame(tx, g); err != nil {
			return fmt.Errorf("loading game %s: %w", g.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
