package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/emit"
	"github.com/roach88/sharpj/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string // run history database; empty disables the cache
	Target   string // output dialect name
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sharpj CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sharpj",
		Short: "sharpj - IR to Java transpiler",
		Long: `Transpile an intermediate representation of a program into Java source.

Programs are CUE, JSON or YAML documents describing classes, methods,
statements and typed expressions. Constant expressions are folded before
emission unless --no-fold is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if _, err := emit.LookupDialect(opts.Target); err != nil {
				return WrapExitError(ExitCommandError, "invalid target", err)
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.Verbose))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "run history database (enables the output cache)")
	cmd.PersistentFlags().StringVar(&opts.Target, "target", "java", "output dialect")

	// Add subcommands
	cmd.AddCommand(NewTranspileCommand(opts))
	cmd.AddCommand(NewFoldCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// newLogger builds the CLI logger: debug records when verbose, warnings
// and above otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// dialect resolves --target. An empty target means Java.
func (o *RootOptions) dialect() (*emit.Dialect, error) {
	if o.Target == "" {
		return emit.Java, nil
	}
	return emit.LookupDialect(o.Target)
}

// openStore opens the --db database, or returns nil when none is set.
func (o *RootOptions) openStore() (*store.Store, error) {
	if o.Database == "" {
		return nil, nil
	}
	return store.Open(o.Database)
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
