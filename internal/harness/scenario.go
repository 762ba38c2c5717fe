package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sharpj/internal/compiler"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the path of the program document (.cue, .json, .yaml, .yml).
	// Relative paths are resolved against the scenario file's directory.
	Input string `yaml:"input"`

	// Target names the output dialect. Empty means java.
	Target string `yaml:"target,omitempty"`

	// Fold enables constant folding. Nil means enabled.
	Fold *bool `yaml:"fold,omitempty"`

	// Expect describes the expected outcome.
	Expect Expectation `yaml:"expect"`

	// Path is the file the scenario was loaded from.
	Path string `yaml:"-"`
}

// Expectation describes what a scenario run must produce.
// ErrorCode is exclusive with the output checks.
type Expectation struct {
	// Output is the path of a file holding the exact expected text.
	Output string `yaml:"output,omitempty"`

	// Contains lists substrings the output must contain.
	Contains []string `yaml:"contains,omitempty"`

	// NotContains lists substrings the output must not contain.
	NotContains []string `yaml:"not_contains,omitempty"`

	// ErrorCode is the code the run must fail with (e.g. "E101", "E200").
	ErrorCode string `yaml:"error_code,omitempty"`
}

// Folding reports whether the scenario runs the folding pass.
func (s *Scenario) Folding() bool {
	return s.Fold == nil || *s.Fold
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.Path = path

	// Resolve paths relative to the scenario BEFORE validation
	base := filepath.Dir(path)
	scenario.Input = resolve(base, scenario.Input)
	scenario.Expect.Output = resolve(base, scenario.Expect.Output)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadScenarios loads every .yaml and .yml scenario directly inside dir,
// ordered by file name. The first invalid scenario aborts the load.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name %q in %s and %s", s.Name, prev, p)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Input == "" {
		return fmt.Errorf("input is required")
	}
	if !compiler.IsProgramFile(s.Input) {
		return fmt.Errorf("input %s: unsupported extension", s.Input)
	}
	if _, err := os.Stat(s.Input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", s.Input)
	}

	e := s.Expect
	hasOutputChecks := e.Output != "" || len(e.Contains) > 0 || len(e.NotContains) > 0
	switch {
	case e.ErrorCode != "" && hasOutputChecks:
		return fmt.Errorf("expect: error_code cannot be combined with output checks")
	case e.ErrorCode == "" && !hasOutputChecks:
		return fmt.Errorf("expect: one of output, contains, not_contains or error_code is required")
	}

	if e.Output != "" {
		if _, err := os.Stat(e.Output); os.IsNotExist(err) {
			return fmt.Errorf("expected output file not found: %s", e.Output)
		}
	}

	for i, sub := range e.Contains {
		if sub == "" {
			return fmt.Errorf("expect.contains[%d]: empty substring", i)
		}
	}
	for i, sub := range e.NotContains {
		if sub == "" {
			return fmt.Errorf("expect.not_contains[%d]: empty substring", i)
		}
	}

	return nil
}
