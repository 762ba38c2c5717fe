package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/pipeline"
)

// TranspileOptions holds flags for the transpile command.
type TranspileOptions struct {
	*RootOptions
	Output string // output file; empty means next to the input
	Stdout bool   // print the source instead of writing a file
	NoFold bool   // skip constant folding
}

// TranspileResult is the JSON payload of a successful transpile.
type TranspileResult struct {
	RunID      string     `json:"run_id"`
	Input      string     `json:"input"`
	OutputFile string     `json:"output_file,omitempty"`
	Source     string     `json:"source,omitempty"`
	InputHash  string     `json:"input_hash"`
	OutputHash string     `json:"output_hash"`
	Target     string     `json:"target"`
	Folded     bool       `json:"folded"`
	Cached     bool       `json:"cached"`
	Stats      fold.Stats `json:"stats"`
}

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranspileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transpile <input>",
		Short: "Transpile an IR program to target source",
		Long: `Transpile an IR program document (.cue, .json, .yaml, .yml) to target source.

The program is validated, constant-folded (unless --no-fold) and emitted.
By default the result is written next to the input with the target's
extension, e.g. calculator.cue -> calculator.java.

With --db, runs are recorded in a SQLite history and identical runs are
served from its output cache.

Exit codes:
  0 - Success
  1 - Program failed to compile, validate or emit
  2 - Command error (input not found, database unavailable, etc.)

Examples:
  sharpj transpile calculator.cue
  sharpj transpile calculator.cue --stdout --no-fold
  sharpj transpile calculator.yaml -o out/Calculator.java --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranspile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: next to the input)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print the source instead of writing a file")
	cmd.Flags().BoolVar(&opts.NoFold, "no-fold", false, "skip constant folding")

	return cmd
}

func runTranspile(opts *TranspileOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	d, err := opts.dialect()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	prog, err := LoadProgram(input)
	if err != nil {
		return loadFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %s", input)

	st, err := opts.openStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, fmt.Sprintf("opening database: %v", err), nil)
	}
	defer st.Close()

	tr := pipeline.New(d,
		pipeline.WithFolding(!opts.NoFold),
		pipeline.WithStore(st),
		pipeline.WithLogger(slog.Default()),
	)
	res, err := tr.RunSource(cmd.Context(), prog, input)
	if err != nil {
		return runFailure(formatter, err)
	}

	result := TranspileResult{
		RunID:      res.RunID,
		Input:      input,
		InputHash:  res.InputHash,
		OutputHash: res.OutputHash,
		Target:     d.Name,
		Folded:     res.Folded,
		Cached:     res.Cached,
		Stats:      res.Stats,
	}

	if opts.Stdout {
		if formatter.JSON() {
			result.Source = res.Output
			return formatter.Encode(CLIResponse{Status: "ok", Data: result, RunID: res.RunID})
		}
		_, err := fmt.Fprint(formatter.Writer, res.Output)
		return err
	}

	path := opts.Output
	if path == "" {
		path = filepath.Join(filepath.Dir(input), res.FileName)
	}
	if err := writeOutput(path, res.Output); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}
	result.OutputFile = path
	formatter.VerboseLog("Run %s (cached: %t)", res.RunID, res.Cached)

	if formatter.JSON() {
		return formatter.Encode(CLIResponse{Status: "ok", Data: result, RunID: res.RunID})
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %s\n", path)
	return nil
}

func writeOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// loadFailure reports a LoadProgram error. A missing input is a command
// error; a document that does not compile is a failure.
func loadFailure(formatter *OutputFormatter, err error) error {
	code := loadErrorCode(err)
	exit := ExitFailure
	if code == ErrCodeNotFound {
		exit = ExitCommandError
	}
	return formatter.Fail(exit, code, err.Error(), nil)
}

// runFailure reports a pipeline error with its code and, for validation
// failures, every validation error as details.
func runFailure(formatter *OutputFormatter, err error) error {
	var re *pipeline.RunError
	if !errors.As(err, &re) {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	var details any
	if len(re.Validation) > 0 {
		details = re.Validation
	}
	return formatter.Fail(ExitFailure, re.Code, re.Error(), details)
}
