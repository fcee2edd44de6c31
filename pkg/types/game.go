package types

import (
	"errors"
	"math"
	"time"
)

// Game state constants. Lost and stopped are terminal.
const (
	GameStatePlaying = "playing"
	GameStateLost    = "lost"
	GameStateStopped = "stopped"
)

// Game entity errors.
var (
	ErrInvalidState    = errors.New("invalid game state")
	ErrGameNotFinished = errors.New("game is still playing")
)

// Game is one round-by-round session at the drum. Current rotates after every
// surviving round; Target never changes. Entity methods modify the struct in
// memory; the caller records finished games through a Ledger.
type Game struct {
	GameID       string     `json:"game_id"`
	State        string     `json:"state"`
	StartBalance uint64     `json:"start_balance"`
	Balance      uint64     `json:"balance"`
	Current      int        `json:"current"`
	Target       int        `json:"target"`
	Rounds       int        `json:"rounds"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at"`
}

// NewGame returns a game in the playing state holding balance, with the drum
// at the given current and target positions.
func NewGame(balance uint64, current, target int) *Game {
	return &Game{
		State:        GameStatePlaying,
		StartBalance: balance,
		Balance:      balance,
		Current:      current,
		Target:       target,
		CreatedAt:    time.Now().UTC(),
	}
}

// Loaded reports whether the current position has reached the target.
func (g *Game) Loaded() bool {
	return g.Current == g.Target
}

// Finished reports whether the game is in a terminal state.
func (g *Game) Finished() bool {
	return g.State == GameStateLost || g.State == GameStateStopped
}

// Survive completes a round the player lived through: the balance doubles
// and the drum moves to next. The balance saturates at math.MaxUint64.
// Returns ErrInvalidState unless the game is playing.
func (g *Game) Survive(next int) error {
	if g.State != GameStatePlaying {
		return ErrInvalidState
	}
	g.Balance = double(g.Balance)
	g.Current = next
	g.Rounds++
	return nil
}

// Lose ends the game on a fired round. The balance drops to zero.
// Returns ErrInvalidState unless the game is playing.
func (g *Game) Lose() error {
	if g.State != GameStatePlaying {
		return ErrInvalidState
	}
	now := time.Now().UTC()
	g.Balance = 0
	g.Rounds++
	g.State = GameStateLost
	g.EndedAt = &now
	return nil
}

// Stop ends the game with the balance the player currently holds.
// Returns ErrInvalidState unless the game is playing.
func (g *Game) Stop() error {
	if g.State != GameStatePlaying {
		return ErrInvalidState
	}
	now := time.Now().UTC()
	g.State = GameStateStopped
	g.EndedAt = &now
	return nil
}

func double(v uint64) uint64 {
	if v > math.MaxUint64/2 {
		return math.MaxUint64
	}
	return v * 2
}
