package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/ir"
)

// Error codes for CLI operations (E001-E099)
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeCompileFailed = "E004" // Document failed to compile
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeUnknownFormat = "E008" // Unsupported document extension
	ErrCodeNoDatabase    = "E009" // Command needs --db
	ErrCodeStoreFailed   = "E010" // Database open or query failed
	ErrCodeNoScenarios   = "E011" // No scenario files found
)

// LoadError represents an error that occurred while loading a program.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadProgram reads and compiles the program document at path.
// Every failure is returned as a *LoadError.
func LoadProgram(path string) (*ir.Program, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing input: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input is a directory: %s", path)}
	}

	prog, err := compiler.LoadFile(path)
	if err == nil {
		return prog, nil
	}

	var compileErr *compiler.CompileError
	switch {
	case errors.Is(err, compiler.ErrUnknownFormat):
		return nil, &LoadError{Code: ErrCodeUnknownFormat, Message: err.Error()}
	case errors.As(err, &compileErr):
		return nil, &LoadError{
			Code:    ErrCodeCompileFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	default:
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
}

// loadErrorCode returns the code of a *LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

// lineOf returns the 1-based line of pos, or 0 when pos is unknown.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}
