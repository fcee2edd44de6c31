package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize drum configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and initialize the game ledger.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd.ErrOrStderr())
	if err != nil {
		return sysError(err)
	}

	ledger, err := openLedger(s)
	if err != nil {
		return sysError(fmt.Errorf("initialize storage: %w", err))
	}
	if err := ledger.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Drum initialized successfully")
	fmt.Fprintln(out, "  config:", s.configDir)
	fmt.Fprintln(out, "  data:  ", s.dataDir)
	return nil
}
