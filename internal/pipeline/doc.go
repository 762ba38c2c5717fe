// Package pipeline drives one transpilation run end to end:
//
//	validate -> hash -> cache lookup -> fold -> emit -> record
//
// A Transpiler is configured once and is safe for concurrent use; every run
// gets its own ID, its own fold statistics and its own output. Passing a
// store enables the output cache and run history. Without one the
// pipeline is purely in-memory.
package pipeline
