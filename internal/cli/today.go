package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RobOwenKing/twenty-eight/internal/game"
)

// NewTodayCommand creates the today command, which prints the current
// day's puzzle and progress without entering the interactive game.
func NewTodayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's digits and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, opts)
		},
	}
}

func runToday(cmd *cobra.Command, opts *RootOptions) error {
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

	sess, err := game.NewSession(cmd.Context(), st, game.WallClock{}, v)
	if err != nil {
		return WrapExitError(ExitFailure, "open today's puzzle", err)
	}
	out.Verbosef("session %s", sess.Token())

	snap := sess.Snapshot()
	return out.Success(snap, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %s\n", v.Title, snap.Date)
		fmt.Fprintf(w, "Digits: %s\n", joinInts(snap.Digits, " "))
		fmt.Fprintf(w, "Score:  %d / %d", snap.Score, len(snap.Possibles))
		if snap.FullClear {
			fmt.Fprint(w, "  (full clear!)")
		}
		fmt.Fprintln(w)

		if len(snap.Impossibles) > 0 {
			fmt.Fprintf(w, "Impossible today: %s\n", joinInts(snap.Impossibles, ", "))
		}
		if len(snap.Found) > 0 {
			fmt.Fprintln(w, "Found:")
			for _, n := range snap.Found {
				fmt.Fprintf(w, "  %2d = %s\n", n, snap.Answers[n])
			}
		}
	})
}

// joinInts renders ints with a separator, for display lines.
func joinInts(ns []int, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, sep)
}
