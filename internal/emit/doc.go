// Package emit renders IR programs as target-language source text.
//
// Emission runs in two steps. Check walks the tree and reports the first
// construct the target dialect cannot express as an *UnsupportedNodeError.
// Only a tree that passes Check is rendered; rendering itself cannot fail.
//
// The renderer is a value visitor: every call receives its nesting depth and
// returns the text it produced, so a Dialect can be shared by concurrent runs.
package emit
