// Package store provides SQLite-backed durable storage for transpilation
// runs.
//
// The store keeps two tables:
//   - runs: one row per transpilation, append-only
//   - outputs: emitted text, content-addressed by ir.OutputHash
//
// # Cache Key
//
// A run is reusable when (input_hash, target, folded, tool_version) match.
// LookupOutput resolves that key to the most recent output text.
//
// # Ordering
//
// Runs are ordered by seq, an INTEGER assigned on insert, never by wall
// time. All list queries use ORDER BY seq ASC.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce runs.output_hash -> outputs.hash
package store
