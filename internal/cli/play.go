// Play command: the default action of the drum CLI.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drum/internal/game"
	"github.com/mesh-intelligence/drum/pkg/types"
)

// runPlay plays one game. It always succeeds once the final balance is
// printed: config and ledger failures are reported on stderr as warnings.
func runPlay(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	s, err := loadSettings(stderr)
	if err != nil {
		warn(stderr, fmt.Errorf("config: %w", err))
		s = defaultSettings()
	}

	var src game.Source
	if cmd.Flags().Changed("seed") {
		src = game.NewSource(flags.seed)
	}

	con := game.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	g, err := game.Play(con, game.Options{
		DefaultBalance: s.defaultBalance,
		Source:         src,
	})
	if err != nil {
		warn(stderr, err)
	}

	if !s.record || flags.noRecord {
		return nil
	}
	if err := recordGame(s, g); err != nil {
		warn(stderr, err)
	}
	return nil
}

// recordGame stores a finished game in the ledger configured by s.
func recordGame(s settings, g *types.Game) error {
	ledger, err := openLedger(s)
	if err != nil {
		return err
	}
	defer ledger.Detach()

	if _, err := ledger.Record(g); err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	return nil
}

func warn(w io.Writer, err error) {
	fmt.Fprintln(w, "warning:", err)
}
