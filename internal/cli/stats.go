package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RobOwenKing/twenty-eight/internal/game"
	"github.com/RobOwenKing/twenty-eight/internal/stats"
)

// NewStatsCommand creates the stats command, which aggregates the score
// history into the figures the stats page shows.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate play statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}
}

func runStats(cmd *cobra.Command, opts *RootOptions) error {
	out := opts.formatter(cmd)

	v, err := opts.resolveVariant()
	if err != nil {
		return err
	}
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.Scores(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}
	out.Verbosef("%d history rows", len(rows))

	sum := stats.FromHistoryAt(rows, game.WallClock{}.Today(), v.Bands)
	return out.Success(sum, func(w io.Writer) {
		fmt.Fprintf(w, "Days played: %d\n", sum.DaysPlayed)
		fmt.Fprintf(w, "Today:       %d\n", sum.Today)
		fmt.Fprintf(w, "Highest:     %d\n", sum.Highest)
		fmt.Fprintf(w, "Average:     %.1f\n", sum.Average)

		fmt.Fprint(w, "Last seven: ")
		for i, score := range sum.LastSeven {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, score)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "All time:")
		for _, band := range sum.Bands {
			marker := " "
			if band.Current {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %-6s %s (%d)\n", marker, band.Label, strings.Repeat("#", band.Count), band.Count)
		}
	})
}
