package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/RobOwenKing/twenty-eight/internal/game"
	"github.com/RobOwenKing/twenty-eight/internal/solver"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	Date      string
	Digits    string
	Witnesses bool
}

// NewSolveCommand creates the solve command, which runs the exhaustive
// search for a date's (or an arbitrary) digit sequence and reports which
// targets are reachable.
func NewSolveCommand(opts *RootOptions) *cobra.Command {
	solveOpts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Show which targets are reachable from a digit sequence",
		Long: "Runs the solver for a date's digits (default: today) or an explicit\n" +
			"--digits list, and prints the reachable and unreachable targets.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, opts, solveOpts)
		},
	}

	cmd.Flags().StringVar(&solveOpts.Date, "date", "", "date to solve (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&solveOpts.Digits, "digits", "", "explicit digits, comma-separated (overrides --date)")
	cmd.Flags().BoolVar(&solveOpts.Witnesses, "witnesses", false, "print one expression per reachable target")

	return cmd
}

func runSolve(cmd *cobra.Command, opts *RootOptions, solveOpts *SolveOptions) error {
	out := opts.formatter(cmd)

	v, err := opts.resolveVariant()
	if err != nil {
		return err
	}

	var digs []int
	var date string
	switch {
	case solveOpts.Digits != "":
		if digs, err = parseDigits(solveOpts.Digits); err != nil {
			return NewExitError(ExitFailure, err.Error())
		}
	case solveOpts.Date != "":
		if _, err := time.Parse(game.DateLayout, solveOpts.Date); err != nil {
			return NewExitError(ExitFailure, fmt.Sprintf("invalid date %q: want YYYY-MM-DD", solveOpts.Date))
		}
		date = solveOpts.Date
		digs = v.Digits.ForDate(date)
	default:
		date = game.WallClock{}.Today()
		digs = v.Digits.ForDate(date)
	}

	p := solver.Solve(digs, v.TargetLow, v.TargetHigh)

	type report struct {
		Date        string         `json:"date,omitempty"`
		Digits      []int          `json:"digits"`
		Possibles   []int          `json:"possibles"`
		Impossibles []int          `json:"impossibles"`
		Witnesses   map[int]string `json:"witnesses,omitempty"`
	}
	rep := report{Date: date, Digits: p.Digits, Possibles: p.Possibles, Impossibles: p.Impossibles}
	if solveOpts.Witnesses {
		rep.Witnesses = make(map[int]string, len(p.Possibles))
		for _, n := range p.Possibles {
			if w, ok := p.Witness(n); ok {
				rep.Witnesses[n] = w
			}
		}
	}

	return out.Success(rep, func(w io.Writer) {
		if date != "" {
			fmt.Fprintf(w, "Date:   %s\n", date)
		}
		fmt.Fprintf(w, "Digits: %s\n", joinInts(p.Digits, " "))
		fmt.Fprintf(w, "Reachable (%d of %d): %s\n", len(p.Possibles), p.Size(), joinInts(p.Possibles, ", "))
		if len(p.Impossibles) > 0 {
			fmt.Fprintf(w, "Unreachable: %s\n", joinInts(p.Impossibles, ", "))
		}
		if solveOpts.Witnesses {
			fmt.Fprintln(w, "Witnesses:")
			for _, n := range p.Possibles {
				if witness, ok := p.Witness(n); ok {
					fmt.Fprintf(w, "  %2d = %s\n", n, witness)
				}
			}
		}
	})
}

// parseDigits parses a comma-separated digit list, e.g. "6,1,5,9".
func parseDigits(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	digs := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 9 {
			return nil, fmt.Errorf("invalid digits %q: want single digits, comma-separated", s)
		}
		digs = append(digs, n)
	}
	if len(digs) == 0 {
		return nil, fmt.Errorf("invalid digits %q: empty list", s)
	}
	return digs, nil
}
