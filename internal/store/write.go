package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
)

// Run is one recorded transpilation.
type Run struct {
	Seq         int64      `json:"seq"`
	ID          string     `json:"id"`
	InputHash   string     `json:"input_hash"`
	Target      string     `json:"target"`
	Folded      bool       `json:"folded"`
	OutputHash  string     `json:"output_hash"`
	Source      string     `json:"source,omitempty"`
	Stats       fold.Stats `json:"stats"`
	Cached      bool       `json:"cached"`
	ToolVersion string     `json:"tool_version"`
}

// CacheKey identifies the inputs that determine a run's output.
type CacheKey struct {
	InputHash   string
	Target      string
	Folded      bool
	ToolVersion string
}

// Key returns the cache key of r.
func (r Run) Key() CacheKey {
	return CacheKey{InputHash: r.InputHash, Target: r.Target, Folded: r.Folded, ToolVersion: r.ToolVersion}
}

// WriteRun records run together with its emitted output and returns the
// run's seq.
//
// The output row and the run row are written in one transaction. The output
// is content-addressed: run.OutputHash is recomputed from output, and a
// second write of the same text is a no-op. A second write of the same run
// ID is ignored and returns the existing seq.
func (s *Store) WriteRun(ctx context.Context, run Run, output string) (int64, error) {
	if run.ID == "" {
		return 0, fmt.Errorf("write run: id is required")
	}
	if run.ToolVersion == "" {
		run.ToolVersion = ir.ToolVersion
	}
	run.OutputHash = ir.OutputHash(output)

	statsJSON, err := marshalStats(run.Stats)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outputs (hash, content)
		VALUES (?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, run.OutputHash, output); err != nil {
		return 0, fmt.Errorf("write run: insert output: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, input_hash, target, folded, output_hash, source, stats, cached, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.InputHash,
		run.Target,
		boolToInt(run.Folded),
		run.OutputHash,
		run.Source,
		statsJSON,
		boolToInt(run.Cached),
		run.ToolVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: insert run: %w", err)
	}

	var seq int64
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("write run: rows affected: %w", err)
	}
	if rows > 0 {
		seq, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("write run: last insert id: %w", err)
		}
	} else {
		// Already recorded, return the existing seq
		err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("write run: %s vanished after conflict", run.ID)
		}
		if err != nil {
			return 0, fmt.Errorf("write run: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
