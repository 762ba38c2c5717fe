package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/emit"
	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
	"github.com/roach88/sharpj/internal/testutil"
)

func TestFold_OutputIsAProgram(t *testing.T) {
	stdout, _, err := execute(t, "fold", copyExample(t, "folding.json"))
	require.NoError(t, err)

	folded, err := compiler.CompileBytes([]byte(stdout), "folded.json")
	require.NoError(t, err)
	assert.Equal(t, ir.MustProgramHash(fold.Fold(testutil.Folding())), ir.MustProgramHash(folded))

	out, err := emit.Emit(folded, nil)
	require.NoError(t, err)
	assert.Equal(t, expected(t, "folding.java"), out)
}

func TestFold_FeedsTranspile(t *testing.T) {
	stdout, _, err := execute(t, "fold", copyExample(t, "folding.json"))
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "folded.json", stdout)

	source, _, err := execute(t, "transpile", "--stdout", "--no-fold", path)
	require.NoError(t, err)
	assert.Equal(t, expected(t, "folding.java"), source)
}

func TestFold_JSON(t *testing.T) {
	stdout, _, err := execute(t, "fold", "--format", "json", copyExample(t, "folding.json"))
	require.NoError(t, err)

	var result struct {
		InputHash string     `json:"input_hash"`
		Stats     fold.Stats `json:"stats"`
	}
	resp := decodeResponse(t, stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ir.MustProgramHash(testutil.Folding()), result.InputHash)
	assert.Equal(t, 4, result.Stats.BinaryFolded)
	assert.Equal(t, 2, result.Stats.UnaryFolded)
	assert.Equal(t, 1, result.Stats.DivisionByZeroSkipped)
}

func TestFold_RejectsInvalidProgram(t *testing.T) {
	stdout, _, err := execute(t, "fold", copyExample(t, "bad_name.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E101]")
}

func TestDump(t *testing.T) {
	stdout, _, err := execute(t, "dump", copyExample(t, "calculator.cue"))
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join("..", "dump", "testdata", "golden", "calculator.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), stdout)
}

func TestDump_Folded(t *testing.T) {
	input := copyExample(t, "folding.json")

	plain, _, err := execute(t, "dump", input)
	require.NoError(t, err)
	folded, _, err := execute(t, "dump", "--folded", input)
	require.NoError(t, err)

	assert.Contains(t, plain, "BinaryOperation")
	assert.Contains(t, folded, "Literal: 14 (Type: int)")
	assert.NotEqual(t, plain, folded)
}

func TestDump_JSON(t *testing.T) {
	stdout, _, err := execute(t, "dump", "--format", "json", "--folded", copyExample(t, "calculator.cue"))
	require.NoError(t, err)

	var result DumpResult
	decodeResponse(t, stdout, &result)
	assert.True(t, result.Folded)
	assert.Contains(t, result.Dump, "Class: Calculator")
}

func TestDump_MissingInput(t *testing.T) {
	_, _, err := execute(t, "dump", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
