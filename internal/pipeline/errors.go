package pipeline

import (
	"errors"
	"fmt"

	"github.com/roach88/sharpj/internal/compiler"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageHash     Stage = "hash"
	StageEmit     Stage = "emit"
)

// Pipeline error codes. Validation failures carry the compiler's E1xx code.
const (
	CodeUnsupported = "E200" // construct the target dialect cannot express
	CodeHash        = "E201" // program could not be hashed
	CodeCanceled    = "E202" // context canceled between stages
)

// RunError is returned by Transpiler.Run. Location is the tree path of the
// offending node when one is known.
type RunError struct {
	Stage    Stage
	Code     string
	Location string
	Err      error

	// Validation holds every validation error when Stage is StageValidate.
	Validation []compiler.ValidationError
}

func (e *RunError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s [%s] at %s: %v", e.Stage, e.Code, e.Location, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Stage, e.Code, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the RunError wrapped in err, or "" if err is
// not a RunError.
func ErrorCode(err error) string {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func validationError(errs []compiler.ValidationError) *RunError {
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	msg := fmt.Errorf("%d validation error(s): %w", len(errs), errors.Join(joined...))
	return &RunError{
		Stage:      StageValidate,
		Code:       errs[0].Code,
		Location:   errs[0].Field,
		Err:        msg,
		Validation: errs,
	}
}
