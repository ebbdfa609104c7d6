package cli

import (
	"github.com/spf13/cobra"

	"github.com/RobOwenKing/twenty-eight/internal/game"
	"github.com/RobOwenKing/twenty-eight/internal/tui"
)

// NewPlayCommand creates the play command, the interactive terminal game.
func NewPlayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play today's puzzle interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
}

func runPlay(cmd *cobra.Command, opts *RootOptions) error {
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

	if err := tui.Run(sess, v, st); err != nil {
		return WrapExitError(ExitFailure, "run game", err)
	}
	return nil
}
