// History command lists recorded games.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/drum/pkg/types"
)

func newHistoryCmd() *cobra.Command {
	var (
		filter  types.Filter
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded games",
		Long: `History lists finished games from the ledger, most recent first.

Example:
  drum history
  drum history --state lost
  drum history --limit 10
  drum history --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, filter, jsonOut)
		},
	}

	cmd.Flags().StringVar(&filter.State, "state", "", "filter by outcome (lost, stopped)")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of results (0 = no limit)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	return cmd
}

func runHistory(cmd *cobra.Command, filter types.Filter, jsonOut bool) error {
	s, err := loadSettings(cmd.ErrOrStderr())
	if err != nil {
		return sysError(err)
	}

	ledger, err := openLedger(s)
	if err != nil {
		return sysError(err)
	}
	defer ledger.Detach()

	games, err := ledger.List(filter)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := json.MarshalIndent(games, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal games: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printGameTable(out, games)
	return nil
}

// printGameTable prints games in a human-readable table format.
func printGameTable(out io.Writer, games []*types.Game) {
	if len(games) == 0 {
		fmt.Fprintln(out, "No games recorded.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tSTATE\tSTART\tFINAL\tROUNDS\tPLAYED")
	fmt.Fprintln(w, "--\t-----\t-----\t-----\t------\t------")
	for _, g := range games {
		// Truncate ID to first 8 chars for readability
		shortID := g.GameID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			shortID,
			g.State,
			g.StartBalance,
			g.Balance,
			g.Rounds,
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()

	for line := range strings.SplitSeq(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(out, "Total: %d game(s)\n", len(games))
}
