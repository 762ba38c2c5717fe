package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `seq, id, input_hash, target, folded, output_hash, source, stats, cached, tool_version`

// LookupOutput returns the output of the most recent run matching key.
// found is false when no run matches.
func (s *Store) LookupOutput(ctx context.Context, key CacheKey) (output string, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT o.content
		FROM runs r
		JOIN outputs o ON o.hash = r.output_hash
		WHERE r.input_hash = ? AND r.target = ? AND r.folded = ? AND r.tool_version = ?
		ORDER BY r.seq DESC
		LIMIT 1
	`, key.InputHash, key.Target, boolToInt(key.Folded), key.ToolVersion).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup output: %w", err)
	}
	return output, true, nil
}

// ReadRun retrieves a single run by ID.
// Returns ErrNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ReadOutput retrieves emitted text by its content hash.
// Returns ErrNotFound if no such output exists.
func (s *Store) ReadOutput(ctx context.Context, hash string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM outputs WHERE hash = ?`, hash).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("read output %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read output %s: %w", hash, err)
	}
	return content, nil
}

// ListRuns returns the most recent limit runs in seq order (oldest first).
// A limit of zero or less returns every run.
//
// Returns an empty slice (not nil) if there are no runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM (
			SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT ?
		)
		ORDER BY seq ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		folded    int
		cached    int
		statsJSON string
	)
	err := sc.Scan(
		&run.Seq,
		&run.ID,
		&run.InputHash,
		&run.Target,
		&folded,
		&run.OutputHash,
		&run.Source,
		&statsJSON,
		&cached,
		&run.ToolVersion,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Folded = folded != 0
	run.Cached = cached != 0
	run.Stats, err = unmarshalStats(statsJSON)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}
