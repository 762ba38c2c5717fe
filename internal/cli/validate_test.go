package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllValid(t *testing.T) {
	stdout, _, err := execute(t, "validate",
		copyExample(t, "calculator.cue"),
		copyExample(t, "control_flow.yaml"),
		copyExample(t, "folding.json"),
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ All programs valid")
	assert.NotContains(t, stdout, "✗")
}

func TestValidate_ReportsEveryFile(t *testing.T) {
	good := copyExample(t, "calculator.cue")
	bad := copyExample(t, "bad_name.cue")
	unsupported := copyExample(t, "mixed_for_init.cue")

	stdout, _, err := execute(t, "validate", good, bad, unsupported)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "✓ "+good)
	assert.Contains(t, stdout, "✗ "+bad)
	assert.Contains(t, stdout, "E101 classes[0].name")
	assert.Contains(t, stdout, "✗ "+unsupported)
	assert.Contains(t, stdout, "E200 classes[0].methods[0].body.statements[1]")
	assert.Contains(t, stdout, "2 of 3 file(s) invalid")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	input := writeFile(t, t.TempDir(), "many.yaml", `
namespace: "demo..app"
classes:
  - name: "Bad Name"
    methods:
      - name: "run"
        return_type: ""
        body:
          statements: []
`)

	stdout, _, err := execute(t, "validate", "--format", "json", input)
	require.Error(t, err)

	var report ValidateReport
	resp := decodeResponse(t, stdout, &report)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E101", resp.Error.Code)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.False(t, r.Valid)
	var codes []string
	for _, e := range r.Errors {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"E101", "E101", "E103"}, codes)
	assert.Equal(t, 0, report.Valid)
	assert.Equal(t, 1, report.Invalid)
}

func TestValidate_CompileErrorLine(t *testing.T) {
	input := writeFile(t, t.TempDir(), "broken.cue", `classes: [{name: "C", methods: [{name: "m", return_type: "void", body: statements: [
	{kind: "return", value: {kind: "lambda", type: "int"}},
]}]}]
`)

	stdout, _, err := execute(t, "validate", "--format", "json", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var report ValidateReport
	decodeResponse(t, stdout, &report)
	require.Len(t, report.Results, 1)
	r := report.Results[0]
	require.Len(t, r.Errors, 1)
	assert.Equal(t, ErrCodeCompileFailed, r.Errors[0].Code)
	assert.Equal(t, "load", r.Errors[0].Field)
	assert.Equal(t, 2, r.Line)
}

func TestValidate_MissingInput(t *testing.T) {
	stdout, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "E005")
}

func TestValidate_RequiresInput(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)
}
