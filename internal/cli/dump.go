package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/dump"
	"github.com/roach88/sharpj/internal/fold"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Folded bool // dump the tree after constant folding
}

// DumpResult is the JSON payload of the dump command.
type DumpResult struct {
	Dump   string `json:"dump"`
	Folded bool   `json:"folded"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "dump <input>",
		Short:         "Print the IR tree as an indented outline",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Folded, "folded", false, "dump the tree after constant folding")

	return cmd
}

func runDump(opts *DumpOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	prog, err := loadValid(formatter, input)
	if err != nil {
		return err
	}
	if opts.Folded {
		prog = fold.Fold(prog)
	}

	text := dump.Dump(prog)
	if formatter.JSON() {
		return formatter.Success(DumpResult{Dump: text, Folded: opts.Folded})
	}
	_, err = fmt.Fprint(formatter.Writer, text)
	return err
}
