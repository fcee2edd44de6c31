// Tests for the SQLite game ledger.
package sqlite

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/drum/internal/paths"
	"github.com/mesh-intelligence/drum/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	tmpDir := t.TempDir()

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}))
	t.Cleanup(func() { b.Detach() })
	return b, tmpDir
}

// finishedGame returns a game that went rounds survived rounds before
// ending in state.
func finishedGame(t *testing.T, balance uint64, rounds int, state string) *types.Game {
	t.Helper()
	g := types.NewGame(balance, 1, 6)
	for i := 0; i < rounds; i++ {
		require.NoError(t, g.Survive(g.Current+1))
	}
	switch state {
	case types.GameStateLost:
		require.NoError(t, g.Lose())
	case types.GameStateStopped:
		require.NoError(t, g.Stop())
	}
	return g
}

func TestBackend_Attach(t *testing.T) {
	b, tmpDir := attachTemp(t)

	_, err := os.Stat(filepath.Join(tmpDir, paths.DatabaseFileName))
	assert.NoError(t, err, "drum.db not created")

	info, err := os.Stat(filepath.Join(tmpDir, paths.GamesFileName))
	require.NoError(t, err, "games.jsonl not created")
	assert.Zero(t, info.Size())

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()

	err := b.Attach(types.Config{Backend: "", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	err = b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err := b.Record(finishedGame(t, 10, 0, types.GameStateStopped))
	assert.ErrorIs(t, err, types.ErrLedgerDetached)

	_, err = b.Get("anything")
	assert.ErrorIs(t, err, types.ErrLedgerDetached)

	_, err = b.List(types.Filter{})
	assert.ErrorIs(t, err, types.ErrLedgerDetached)

	_, err = b.Summarize()
	assert.ErrorIs(t, err, types.ErrLedgerDetached)
}

func TestBackend_RecordAndGet(t *testing.T) {
	b, _ := attachTemp(t)
	g := finishedGame(t, 50, 1, types.GameStateStopped)

	id, err := b.Record(g)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, g.GameID, "Record should assign the ID to the game")

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Equal(t, g.GameID, got.GameID)
	assert.Equal(t, types.GameStateStopped, got.State)
	assert.Equal(t, uint64(50), got.StartBalance)
	assert.Equal(t, uint64(100), got.Balance)
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, 6, got.Target)
	assert.Equal(t, 1, got.Rounds)
	assert.True(t, g.CreatedAt.Equal(got.CreatedAt), "created_at round-trip")
	require.NotNil(t, got.EndedAt)
	assert.True(t, g.EndedAt.Equal(*got.EndedAt), "ended_at round-trip")
}

func TestBackend_RecordKeepsGivenID(t *testing.T) {
	b, _ := attachTemp(t)
	g := finishedGame(t, 10, 0, types.GameStateLost)
	g.GameID = "fixed-id"

	id, err := b.Record(g)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	// Recording again replaces rather than duplicates.
	_, err = b.Record(g)
	require.NoError(t, err)

	games, err := b.List(types.Filter{})
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestBackend_RecordRejectsInvalidGames(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.Record(nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = b.Record(types.NewGame(10, 1, 2))
	assert.ErrorIs(t, err, types.ErrGameNotFinished)
}

func TestBackend_RecordSaturatedBalance(t *testing.T) {
	b, _ := attachTemp(t)
	g := finishedGame(t, math.MaxUint64, 2, types.GameStateStopped)

	id, err := b.Record(g)
	require.NoError(t, err)

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got.Balance)
}

func TestBackend_GetErrors(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = b.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBackend_List(t *testing.T) {
	b, _ := attachTemp(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	states := []string{types.GameStateLost, types.GameStateStopped, types.GameStateLost}
	ids := make([]string, len(states))
	for i, state := range states {
		g := finishedGame(t, 10, i, state)
		g.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		id, err := b.Record(g)
		require.NoError(t, err)
		ids[i] = id
	}

	tests := []struct {
		name    string
		filter  types.Filter
		wantIDs []string
	}{
		{name: "all, most recent first", filter: types.Filter{}, wantIDs: []string{ids[2], ids[1], ids[0]}},
		{name: "lost only", filter: types.Filter{State: types.GameStateLost}, wantIDs: []string{ids[2], ids[0]}},
		{name: "stopped only", filter: types.Filter{State: types.GameStateStopped}, wantIDs: []string{ids[1]}},
		{name: "limit", filter: types.Filter{Limit: 2}, wantIDs: []string{ids[2], ids[1]}},
		{name: "state and limit", filter: types.Filter{State: types.GameStateLost, Limit: 1}, wantIDs: []string{ids[2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games, err := b.List(tt.filter)
			require.NoError(t, err)

			got := make([]string, len(games))
			for i, g := range games {
				got[i] = g.GameID
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestBackend_ListInvalidFilter(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.List(types.Filter{State: types.GameStatePlaying})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	_, err = b.List(types.Filter{Limit: -1})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestBackend_ListEmpty(t *testing.T) {
	b, _ := attachTemp(t)

	games, err := b.List(types.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestBackend_Summarize(t *testing.T) {
	b, _ := attachTemp(t)

	s, err := b.Summarize()
	require.NoError(t, err)
	assert.Equal(t, types.Summary{}, s)

	games := []*types.Game{
		finishedGame(t, 100, 0, types.GameStateLost),    // 1 round, 0
		finishedGame(t, 30, 2, types.GameStateStopped),  // 2 rounds, 120
		finishedGame(t, 999, 0, types.GameStateStopped), // 0 rounds, 999
		finishedGame(t, 5, 3, types.GameStateLost),      // 4 rounds, 0
	}
	for _, g := range games {
		_, err := b.Record(g)
		require.NoError(t, err)
	}

	s, err = b.Summarize()
	require.NoError(t, err)
	assert.Equal(t, types.Summary{
		Games:       4,
		Lost:        2,
		Stopped:     2,
		Rounds:      7,
		BestBalance: 999,
	}, s)
}
