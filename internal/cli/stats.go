// Stats command summarizes the ledger.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	return cmd
}

func runStats(cmd *cobra.Command, jsonOut bool) error {
	s, err := loadSettings(cmd.ErrOrStderr())
	if err != nil {
		return sysError(err)
	}

	ledger, err := openLedger(s)
	if err != nil {
		return sysError(err)
	}
	defer ledger.Detach()

	sum, err := ledger.Summarize()
	if err != nil {
		return sysError(fmt.Errorf("summarize games: %w", err))
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Games:        %d\n", sum.Games)
	fmt.Fprintf(out, "Lost:         %d\n", sum.Lost)
	fmt.Fprintf(out, "Stopped:      %d\n", sum.Stopped)
	fmt.Fprintf(out, "Rounds:       %d\n", sum.Rounds)
	fmt.Fprintf(out, "Best balance: %d\n", sum.BestBalance)
	return nil
}
