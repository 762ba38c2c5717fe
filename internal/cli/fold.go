package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
)

// FoldResult is the JSON payload of the fold command.
type FoldResult struct {
	Program   *ir.Program `json:"program"`
	InputHash string      `json:"input_hash"`
	Stats     fold.Stats  `json:"stats"`
}

// NewFoldCommand creates the fold command.
func NewFoldCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fold <input>",
		Short: "Constant-fold a program and print the resulting IR",
		Long: `Constant-fold an IR program and print the folded tree as JSON.

The output is itself a valid program document, so it can be passed back
to transpile, dump or validate.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runFold(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	prog, err := loadValid(formatter, input)
	if err != nil {
		return err
	}

	hash, err := ir.ProgramHash(prog)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, fmt.Sprintf("hashing program: %v", err), nil)
	}

	folded, stats := fold.FoldWithStats(prog)
	formatter.VerboseLog("Folded %d binary and %d unary operation(s), skipped %d division(s) by zero",
		stats.BinaryFolded, stats.UnaryFolded, stats.DivisionByZeroSkipped)

	if formatter.JSON() {
		return formatter.Success(FoldResult{Program: folded, InputHash: hash, Stats: stats})
	}
	return formatter.Encode(folded)
}

// loadValid loads input and checks it against the tree invariants,
// reporting the first problem through formatter.
func loadValid(formatter *OutputFormatter, input string) (*ir.Program, error) {
	prog, err := LoadProgram(input)
	if err != nil {
		return nil, loadFailure(formatter, err)
	}
	if errs := compiler.Validate(prog); len(errs) > 0 {
		return nil, formatter.Fail(ExitFailure, errs[0].Code,
			fmt.Sprintf("%d validation error(s), first: %s", len(errs), errs[0].Error()), errs)
	}
	return prog, nil
}
