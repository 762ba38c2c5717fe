// Package ir provides the intermediate representation consumed by sharpj's passes.
//
// This package contains the node model, the visitor protocol, and the
// serialization helpers. All other internal packages import ir; ir imports
// nothing internal, so the IR stays the foundational layer.
//
// Key design constraints:
//   - Statement and Expression are sealed: only the variants declared here implement them
//   - Every Expression carries a non-empty static type tag assigned by the producer
//   - Nodes are immutable once constructed; passes build fresh nodes
//   - Literal values are stored as text; numeric interpretation belongs to consumers
//   - All JSON keys use snake_case and every statement/expression carries a "kind"
package ir
