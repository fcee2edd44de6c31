package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/drum/pkg/types"
)

// DefaultBalance is the start balance used when the player's entry does not
// parse.
const DefaultBalance uint64 = 100

// Options configures Play.
type Options struct {
	// DefaultBalance replaces an unparseable balance entry.
	DefaultBalance uint64

	// Source loads the drum. Nil means RandomSource.
	Source Source
}

// Play asks for a start balance, loads the drum, and runs the game to a
// terminal state.
func Play(con *Console, opts Options) (*types.Game, error) {
	src := opts.Source
	if src == nil {
		src = RandomSource()
	}

	fmt.Fprintln(con.out, msgEnterBalance)
	balance := con.ReadBalance(opts.DefaultBalance)
	fmt.Fprintf(con.out, msgStartBalance, balance)

	current, target := Load(src)
	return Run(con, types.NewGame(balance, current, target))
}

// Run plays g round by round until it is lost or the player stops, then
// prints the final balance. Exhausted input stops the game. Any other read
// failure also stops the game and is returned alongside it.
func Run(con *Console, g *types.Game) (*types.Game, error) {
	var readErr error

	for !g.Finished() {
		fmt.Fprintln(con.out, msgPush)
		if err := con.WaitTrigger(); err != nil {
			readErr = err
			break
		}

		if g.Loaded() {
			if err := g.Lose(); err != nil {
				return g, err
			}
			fmt.Fprintln(con.out, msgLose)
			break
		}

		if err := g.Survive(Advance(g.Current)); err != nil {
			return g, err
		}
		fmt.Fprintf(con.out, msgBalance, g.Balance)

		again, err := con.AskYesNo()
		if err != nil {
			fmt.Fprintln(con.out)
			readErr = err
			break
		}
		if !again {
			if err := g.Stop(); err != nil {
				return g, err
			}
		}
	}

	if !g.Finished() {
		if err := g.Stop(); err != nil {
			return g, err
		}
	}
	fmt.Fprintf(con.out, msgFinal, g.Balance)

	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return g, fmt.Errorf("read input: %w", readErr)
	}
	return g, nil
}
