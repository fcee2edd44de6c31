// Package cli implements the drum command-line interface. Invoked without a
// subcommand, drum plays one interactive game on stdin and stdout.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drum/pkg/drum"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	seed      uint64
	noRecord  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "drum" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}

	root := &cobra.Command{
		Use:   "drum",
		Short: "A text-based drum betting game",
		Long: `Drum is a chance game played at the terminal. Enter a balance, then pull
the trigger round after round: every survived round doubles the balance,
landing on the loaded position loses it all. Stop whenever you like.`,
		Version: drum.Version,
		Args:    cobra.NoArgs,
		RunE:    runPlay,
		// Errors are printed once by Execute with the matching exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/drum)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/drum)")
	root.Flags().Uint64Var(&flags.seed, "seed", 0, "seed the drum for a reproducible game")
	root.Flags().BoolVar(&flags.noRecord, "no-record", false, "do not record the game in the ledger")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newStatsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "drum:", err)
		os.Exit(exitCode(err))
	}
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (storage, filesystem, config).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps a command error to a process exit code. Errors not marked
// by sysError are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
