package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/emit"
	"github.com/roach88/sharpj/internal/pipeline"
)

// ValidationResult holds the validation results of one input.
type ValidationResult struct {
	File   string                     `json:"file"`
	Valid  bool                       `json:"valid"`
	Line   int                        `json:"line,omitempty"` // position of a compile error
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// ValidateReport holds the results of a validate invocation.
type ValidateReport struct {
	Results []ValidationResult `json:"results"`
	Valid   int                `json:"valid"`
	Invalid int                `json:"invalid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input>...",
		Short: "Validate programs without emitting output",
		Long: `Validate IR program documents without producing output files.

Each input is compiled, checked against the tree invariants (names, types,
required children, nesting depth) and checked for constructs the target
dialect cannot express. All errors are reported, not just the first.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, inputs []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	d, err := opts.dialect()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	report := ValidateReport{Results: make([]ValidationResult, 0, len(inputs))}
	missing := false
	for _, input := range inputs {
		formatter.VerboseLog("Validating %s", input)
		result := validateFile(input, d)
		if result.Valid {
			report.Valid++
		} else {
			report.Invalid++
			if len(result.Errors) > 0 && result.Errors[0].Code == ErrCodeNotFound {
				missing = true
			}
		}
		report.Results = append(report.Results, result)
	}

	if err := outputValidateReport(formatter, report); err != nil {
		return err
	}

	switch {
	case missing:
		return NewExitError(ExitCommandError, "input not found")
	case report.Invalid > 0:
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", report.Invalid))
	}
	return nil
}

// validateFile runs every check on one input and collects the errors.
func validateFile(input string, d *emit.Dialect) ValidationResult {
	result := ValidationResult{File: input, Valid: true}

	prog, err := LoadProgram(input)
	if err != nil {
		result.Valid = false
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			result.Line = lineOf(loadErr.Pos)
		}
		result.Errors = []compiler.ValidationError{{
			Field:   "load",
			Message: err.Error(),
			Code:    loadErrorCode(err),
		}}
		return result
	}

	if errs := compiler.Validate(prog); len(errs) > 0 {
		result.Valid = false
		result.Errors = errs
		// Emission checks assume a well-formed tree.
		return result
	}

	if err := emit.Check(prog, d); err != nil {
		result.Valid = false
		field := "program"
		var une *emit.UnsupportedNodeError
		if errors.As(err, &une) && une.Path != "" {
			field = une.Path
		}
		result.Errors = []compiler.ValidationError{{
			Field:   field,
			Message: err.Error(),
			Code:    pipeline.CodeUnsupported,
		}}
	}
	return result
}

func outputValidateReport(formatter *OutputFormatter, report ValidateReport) error {
	if formatter.JSON() {
		response := CLIResponse{Status: "ok", Data: report}
		if report.Invalid > 0 {
			first := firstError(report)
			response.Status = "error"
			response.Error = &CLIError{Code: first.Code, Message: first.Message}
		}
		return formatter.Encode(response)
	}

	w := formatter.Writer
	for _, r := range report.Results {
		if r.Valid {
			fmt.Fprintf(w, "✓ %s\n", r.File)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", r.File)
		if r.Line > 0 {
			fmt.Fprintf(w, "  line %d\n", r.Line)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s %s: %s\n", e.Code, e.Field, e.Message)
		}
	}

	if report.Invalid > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "✗ Validation failed: %d of %d file(s) invalid\n", report.Invalid, len(report.Results))
		return nil
	}
	fmt.Fprintln(w, "✓ All programs valid")
	return nil
}

func firstError(report ValidateReport) compiler.ValidationError {
	for _, r := range report.Results {
		if len(r.Errors) > 0 {
			return r.Errors[0]
		}
	}
	return compiler.ValidationError{}
}
