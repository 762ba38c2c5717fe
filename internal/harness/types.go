package harness

import (
	"fmt"

	"github.com/roach88/sharpj/internal/fold"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Scenario is the name of the scenario that produced this result.
	Scenario string `json:"scenario"`

	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// RunID is the pipeline run ID; empty when the run failed.
	RunID string `json:"run_id,omitempty"`

	// Output is the emitted text; empty when the run failed.
	Output string `json:"output,omitempty"`

	// ErrorCode is the code of the run failure, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// Stats holds the folding statistics of the run.
	Stats fold.Stats `json:"stats"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Errors:   []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
