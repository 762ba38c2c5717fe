package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id, inputHash string, folded bool) Run {
	return Run{
		ID:          id,
		InputHash:   inputHash,
		Target:      "java",
		Folded:      folded,
		Stats:       fold.Stats{BinaryFolded: 2, UnaryFolded: 1},
		ToolVersion: ir.ToolVersion,
	}
}
