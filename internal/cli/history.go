package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command, which lists every
// recorded day and its score.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded days and their scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}
}

func runHistory(cmd *cobra.Command, opts *RootOptions) error {
	out := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.Scores(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}

	return out.Success(rows, func(w io.Writer) {
		if len(rows) == 0 {
			fmt.Fprintln(w, "No days played yet.")
			return
		}
		for _, row := range rows {
			status := "open"
			if row.Closed {
				status = "closed"
			}
			fmt.Fprintf(w, "%s  score %2d  %s", row.Date, row.Score, status)
			if row.FullClear {
				fmt.Fprint(w, "  full clear")
			}
			fmt.Fprintln(w)
		}
	})
}
