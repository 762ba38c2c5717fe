package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int // most recent runs to list; 0 means all
}

// RunDetail is the JSON payload of history <run-id>.
type RunDetail struct {
	store.Run
	Output string `json:"output"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded transpile runs",
		Long: `Show runs recorded in the --db database.

Without arguments the most recent runs are listed, oldest first. With a
run ID the run is shown together with its emitted output.

Examples:
  sharpj history --db runs.db
  sharpj history --db runs.db --limit 5
  sharpj history --db runs.db 01928c4e-7a3b-7c00-8000-000000000001`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of recent runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Database == "" {
		return formatter.Fail(ExitCommandError, ErrCodeNoDatabase, "history requires --db", nil)
	}
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("opening database: %v", err), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if len(args) == 1 {
		run, err := st.ReadRun(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("run not found: %s", args[0]), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		output, err := st.ReadOutput(ctx, run.OutputHash)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
		}
		return outputRunDetail(formatter, RunDetail{Run: run, Output: output})
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, err.Error(), nil)
	}
	return outputRunList(formatter, runs)
}

func outputRunList(formatter *OutputFormatter, runs []store.Run) error {
	if formatter.JSON() {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%4d  %s  %-6s  %s  %s\n", r.Seq, r.ID, r.Target, runFlags(r), r.Source)
	}
	return nil
}

func outputRunDetail(formatter *OutputFormatter, d RunDetail) error {
	if formatter.JSON() {
		return formatter.Success(d)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run:          %s\n", d.ID)
	fmt.Fprintf(w, "Source:       %s\n", d.Source)
	fmt.Fprintf(w, "Target:       %s\n", d.Target)
	fmt.Fprintf(w, "Flags:        %s\n", runFlags(d.Run))
	fmt.Fprintf(w, "Input hash:   %s\n", d.InputHash)
	fmt.Fprintf(w, "Output hash:  %s\n", d.OutputHash)
	fmt.Fprintf(w, "Tool version: %s\n", d.ToolVersion)
	fmt.Fprintf(w, "Folded:       %d binary, %d unary, %d division(s) by zero skipped\n",
		d.Stats.BinaryFolded, d.Stats.UnaryFolded, d.Stats.DivisionByZeroSkipped)
	fmt.Fprintln(w)
	fmt.Fprint(w, d.Output)
	return nil
}

// runFlags renders the folded and cached bits of a run.
func runFlags(r store.Run) string {
	fold := "nofold"
	if r.Folded {
		fold = "fold"
	}
	if r.Cached {
		return fold + ",cached"
	}
	return fold
}
