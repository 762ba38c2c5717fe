// Package fold implements the constant-folding pass.
//
// The pass rebuilds the whole tree bottom-up. A BinaryOperation or
// UnaryOperation whose operands fold to literals is replaced by a single
// Literal when the result is well defined; everything else is copied with
// its folded children. The input tree is never modified.
//
// Folding never fails. Unparseable literal text, non-arithmetic operation
// kinds, and division or modulo by a literal zero leave the operation in
// place so the target language observes the original behavior at run time.
package fold
