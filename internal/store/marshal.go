package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
)

// marshalStats converts fold statistics to canonical JSON TEXT for storage.
// Keys match the json tags on fold.Stats so unmarshalStats can decode them.
func marshalStats(stats fold.Stats) (string, error) {
	m := map[string]any{
		"binary_folded":            stats.BinaryFolded,
		"unary_folded":             stats.UnaryFolded,
		"division_by_zero_skipped": stats.DivisionByZeroSkipped,
		"unfoldable":               stats.Unfoldable,
	}
	data, err := ir.MarshalCanonical(m)
	if err != nil {
		return "", fmt.Errorf("marshal stats: %w", err)
	}
	return string(data), nil
}

// unmarshalStats parses canonical JSON TEXT back to fold statistics.
func unmarshalStats(data string) (fold.Stats, error) {
	var stats fold.Stats
	if data == "" || data == "{}" {
		return stats, nil
	}
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return fold.Stats{}, fmt.Errorf("unmarshal stats: %w", err)
	}
	return stats, nil
}
