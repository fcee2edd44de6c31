// This file reads and atomically rewrites games.jsonl.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/drum/pkg/types"
)

// readGames decodes one game per line of path. Lines that are blank, are
// not JSON, lack a game_id, or hold a game still in play are skipped.
// Unknown fields are ignored.
func readGames(path string) ([]*types.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var games []*types.Game
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		g := new(types.Game)
		if err := json.Unmarshal(line, g); err != nil {
			continue
		}
		if g.GameID == "" || !g.Finished() {
			continue
		}
		games = append(games, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return games, nil
}

// writeGames atomically replaces path with one JSON line per game using the
// temp-file, fsync, rename pattern.
func writeGames(path string, games []*types.Game) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".games-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, g := range games {
		if err := enc.Encode(g); err != nil {
			return fail(fmt.Errorf("encoding game %s: %w", g.GameID, err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// touch creates an empty file at path if none exists.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
