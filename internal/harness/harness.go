package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/emit"
	"github.com/roach88/sharpj/internal/pipeline"
	"github.com/roach88/sharpj/internal/store"
	"github.com/roach88/sharpj/internal/testutil"
)

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation, with
// sequential run IDs and logging suppressed.
//
// A returned error means the scenario could not be executed at all (the
// input failed to load, the target is unknown, the expected output file is
// unreadable). Pipeline failures are compared against expect.error_code and
// reported through the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dialect := emit.Java
	if scenario.Target != "" {
		d, err := emit.LookupDialect(scenario.Target)
		if err != nil {
			return nil, err
		}
		dialect = d
	}

	prog, err := compiler.LoadFile(scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	tr := pipeline.New(dialect,
		pipeline.WithFolding(scenario.Folding()),
		pipeline.WithStore(st),
		pipeline.WithIDGenerator(testutil.NewSequentialIDGenerator("run")),
		pipeline.WithLogger(slog.New(slog.DiscardHandler)),
	)

	result := NewResult(scenario.Name)
	res, runErr := tr.RunSource(ctx, prog, scenario.Input)
	if runErr != nil {
		var re *pipeline.RunError
		if !errors.As(runErr, &re) {
			return nil, runErr
		}
		result.ErrorCode = re.Code
		checkFailure(scenario.Expect, re, result)
		return result, nil
	}

	result.RunID = res.RunID
	result.Output = res.Output
	result.Stats = res.Stats
	if err := checkOutput(scenario.Expect, res.Output, result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkFailure(e Expectation, re *pipeline.RunError, result *Result) {
	if e.ErrorCode == "" {
		result.AddError("run failed: %v", re)
		return
	}
	if re.Code != e.ErrorCode {
		result.AddError("expected error code %s, got %s: %v", e.ErrorCode, re.Code, re)
	}
}

func checkOutput(e Expectation, output string, result *Result) error {
	if e.ErrorCode != "" {
		result.AddError("expected error code %s, run succeeded", e.ErrorCode)
		return nil
	}

	if e.Output != "" {
		want, err := os.ReadFile(e.Output)
		if err != nil {
			return fmt.Errorf("failed to read expected output: %w", err)
		}
		if string(want) != output {
			result.AddError("output mismatch with %s:\n%s", e.Output,
				goldie.Diff(goldie.ClassicDiff, output, string(want)))
		}
	}

	for _, sub := range e.Contains {
		if !strings.Contains(output, sub) {
			result.AddError("output does not contain %q", sub)
		}
	}
	for _, sub := range e.NotContains {
		if strings.Contains(output, sub) {
			result.AddError("output unexpectedly contains %q", sub)
		}
	}
	return nil
}
