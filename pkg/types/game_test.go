package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame(50, 1, 4)

	assert.Equal(t, GameStatePlaying, g.State)
	assert.Equal(t, uint64(50), g.StartBalance)
	assert.Equal(t, uint64(50), g.Balance)
	assert.Equal(t, 1, g.Current)
	assert.Equal(t, 4, g.Target)
	assert.Zero(t, g.Rounds)
	assert.Nil(t, g.EndedAt)
	assert.False(t, g.Finished())
	assert.False(t, g.Loaded())
	assert.WithinDuration(t, time.Now(), g.CreatedAt, time.Second)
}

func TestGameSurvive(t *testing.T) {
	g := NewGame(50, 1, 4)

	require.NoError(t, g.Survive(2))
	assert.Equal(t, uint64(100), g.Balance)
	assert.Equal(t, 2, g.Current)
	assert.Equal(t, 4, g.Target, "target must not move")
	assert.Equal(t, 1, g.Rounds)
	assert.Equal(t, GameStatePlaying, g.State)
	assert.Equal(t, uint64(50), g.StartBalance)
}

func TestGameSurviveSaturates(t *testing.T) {
	g := NewGame(math.MaxUint64/2+1, 1, 4)

	require.NoError(t, g.Survive(2))
	assert.Equal(t, uint64(math.MaxUint64), g.Balance)

	require.NoError(t, g.Survive(3))
	assert.Equal(t, uint64(math.MaxUint64), g.Balance)
}

func TestGameLose(t *testing.T) {
	g := NewGame(100, 3, 3)
	require.True(t, g.Loaded())

	require.NoError(t, g.Lose())
	assert.Equal(t, GameStateLost, g.State)
	assert.Zero(t, g.Balance)
	assert.Equal(t, 1, g.Rounds)
	assert.True(t, g.Finished())
	require.NotNil(t, g.EndedAt)
	assert.WithinDuration(t, time.Now(), *g.EndedAt, time.Second)
}

func TestGameStop(t *testing.T) {
	g := NewGame(100, 1, 4)
	require.NoError(t, g.Survive(2))

	require.NoError(t, g.Stop())
	assert.Equal(t, GameStateStopped, g.State)
	assert.Equal(t, uint64(200), g.Balance, "stop keeps the balance")
	assert.True(t, g.Finished())
	assert.NotNil(t, g.EndedAt)
}

func TestGameTransitionsFromTerminalStates(t *testing.T) {
	tests := []struct {
		name  string
		state string
	}{
		{name: "lost", state: GameStateLost},
		{name: "stopped", state: GameStateStopped},
		{name: "unknown", state: "paused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{State: tt.state, Balance: 10, Current: 2, Target: 5}

			assert.ErrorIs(t, g.Survive(3), ErrInvalidState)
			assert.ErrorIs(t, g.Lose(), ErrInvalidState)
			assert.ErrorIs(t, g.Stop(), ErrInvalidState)

			assert.Equal(t, tt.state, g.State, "state should not change on error")
			assert.Equal(t, uint64(10), g.Balance, "balance should not change on error")
			assert.Equal(t, 2, g.Current)
			assert.Zero(t, g.Rounds)
			assert.Nil(t, g.EndedAt)
		})
	}
}
