// Package cli wires the game into a cobra command tree: an interactive
// play command plus read-only commands for inspecting the day, the
// solver's verdicts, and the score history.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobOwenKing/twenty-eight/internal/store"
	"github.com/RobOwenKing/twenty-eight/internal/variant"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string
	Config  string
	Variant string

	cfg Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the twentyeight CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "twentyeight",
		Short: "Twenty-Eight - a daily four-digit calculator puzzle",
		Long: "Four digits a day, each used exactly once. Combine them with\n" +
			"+ - * / and parentheses to make every number from 1 to 28.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := LoadConfig(opts.Config)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (default: user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&opts.Variant, "variant", "", "game variant to play")

	// Subcommands
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatter builds the output formatter for a command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// openStore resolves the database path (flag, config, default) and opens
// it.
func (o *RootOptions) openStore() (*store.Store, error) {
	path := o.DBPath
	if path == "" {
		path = o.cfg.DB
	}
	if path == "" {
		var err error
		if path, err = defaultDBPath(); err != nil {
			return nil, WrapExitError(ExitCommandError, "resolve database path", err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	return st, nil
}

// resolveVariant picks the rule set: flag, then config, then the default,
// from either the embedded registry or a configured variants directory.
func (o *RootOptions) resolveVariant() (variant.Variant, error) {
	registry := variant.Default()
	if dir := o.cfg.VariantsDir; dir != "" {
		loaded, err := variant.LoadDir(dir)
		if err != nil {
			return variant.Variant{}, WrapExitError(ExitCommandError, "load variants", err)
		}
		registry = loaded
	}

	name := o.Variant
	if name == "" {
		name = o.cfg.Variant
	}
	if name == "" {
		name = variant.DefaultName
	}

	v, ok := registry[name]
	if !ok {
		return variant.Variant{}, NewExitError(ExitFailure,
			fmt.Sprintf("unknown variant %q (have %v)", name, variant.Names(registry)))
	}
	return v, nil
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
