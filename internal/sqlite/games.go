// This file implements the game ledger operations for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/drum/internal/paths"
	"github.com/mesh-intelligence/drum/pkg/types"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Record persists a finished game to SQLite and rewrites games.jsonl.
// Generates a UUID v7 when GameID is empty. Recording an existing ID
// replaces the stored game. The SQLite change commits only once games.jsonl
// has been rewritten, so a failed write leaves both unchanged.
func (b *Backend) Record(g *types.Game) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrLedgerDetached
	}
	if g == nil {
		return "", types.ErrInvalidData
	}
	if !g.Finished() {
		return "", types.ErrGameNotFinished
	}

	if g.GameID == "" {
		g.GameID = generateUUID()
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertGame(tx, g); err != nil {
		return "", fmt.Errorf("persisting game: %w", err)
	}

	if err := b.persistGames(tx); err != nil {
		return "", fmt.Errorf("persisting %s: %w", paths.GamesFileName, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return g.GameID, nil
}

// Get retrieves a game by ID.
func (b *Backend) Get(id string) (*types.Game, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := b.db.QueryRow("SELECT "+gameColumns+" FROM games WHERE game_id = ?", id)
	g, err := hydrateGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting game %s: %w", id, err)
	}
	return g, nil
}

// List returns games matching filter, most recent first.
// Returns ErrInvalidFilter for an unknown state or a negative limit.
func (b *Backend) List(filter types.Filter) ([]*types.Game, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	games := []*types.Game{}
	for rows.Next() {
		g, err := hydrateGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating games: %w", err)
	}
	return games, nil
}

// Summarize aggregates outcomes, rounds, and the best final balance across
// every recorded game.
func (b *Backend) Summarize() (types.Summary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var s types.Summary
	if !b.attached {
		return s, types.ErrLedgerDetached
	}

	err := b.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(state = ?), 0),
			COALESCE(SUM(state = ?), 0),
			COALESCE(SUM(rounds), 0)
		FROM games`,
		types.GameStateLost, types.GameStateStopped,
	).Scan(&s.Games, &s.Lost, &s.Stopped, &s.Rounds)
	if err != nil {
		return s, fmt.Errorf("summarizing games: %w", err)
	}

	// Decimal text without leading zeros orders by length, then lexically.
	var best string
	err = b.db.QueryRow(
		"SELECT balance FROM games ORDER BY length(balance) DESC, balance DESC LIMIT 1",
	).Scan(&best)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("finding best balance: %w", err)
	}

	s.BestBalance, err = strconv.ParseUint(best, 10, 64)
	if err != nil {
		return s, fmt.Errorf("parsing best balance %q: %w", best, err)
	}
	return s, nil
}

// buildListQuery translates filter into SQL.
func buildListQuery(filter types.Filter) (string, []any, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("SELECT " + gameColumns + " FROM games")

	switch filter.State {
	case "":
	case types.GameStateLost, types.GameStateStopped:
		sb.WriteString(" WHERE state = ?")
		args = append(args, filter.State)
	default:
		return "", nil, fmt.Errorf("state %q: %w", filter.State, types.ErrInvalidFilter)
	}

	sb.WriteString(" ORDER BY created_at DESC, game_id DESC")

	if filter.Limit < 0 {
		return "", nil, fmt.Errorf("limit %d: %w", filter.Limit, types.ErrInvalidFilter)
	}
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	return sb.String(), args, nil
}

// upsertGame writes g into the games table, replacing any row with the same ID.
func upsertGame(ex execer, g *types.Game) error {
	var endedAt any
	if g.EndedAt != nil {
		endedAt = formatTime(*g.EndedAt)
	}

	_, err := ex.Exec(
		"INSERT OR REPLACE INTO games ("+gameColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		g.GameID,
		g.State,
		strconv.FormatUint(g.StartBalance, 10),
		strconv.FormatUint(g.Balance, 10),
		g.Current,
		g.Target,
		g.Rounds,
		formatTime(g.CreatedAt),
		endedAt,
	)
	return err
}

// hydrateGame scans one games row into a Game.
func hydrateGame(row rowScanner) (*types.Game, error) {
	var (
		g                     types.Game
		startBalance, balance string
		createdAt             string
		endedAt               sql.NullString
	)
	if err := row.Scan(
		&g.GameID, &g.State, &startBalance, &balance,
		&g.Current, &g.Target, &g.Rounds, &createdAt, &endedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if g.StartBalance, err = strconv.ParseUint(startBalance, 10, 64); err != nil {
		return nil, fmt.Errorf("parsing start_balance: %w", err)
	}
	if g.Balance, err = strconv.ParseUint(balance, 10, 64); err != nil {
		return nil, fmt.Errorf("parsing balance: %w", err)
	}
	if g.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if endedAt.Valid {
		t, err := time.Parse(timeLayout, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing ended_at: %w", err)
		}
		g.EndedAt = &t
	}
	return &g, nil
}

// persistGames rewrites games.jsonl from the games table as seen by q,
// oldest first. The caller must hold b.mu.
func (b *Backend) persistGames(q querier) error {
	rows, err := q.Query("SELECT " + gameColumns + " FROM games ORDER BY created_at, game_id")
	if err != nil {
		return fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*types.Game
	for rows.Next() {
		g, err := hydrateGame(rows)
		if err != nil {
			return fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating games: %w", err)
	}
	rows.Close()

	return writeGames(b.files.Games, games)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
