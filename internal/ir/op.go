package ir

import "fmt"

// OpKind identifies an operation carried by a BinaryOperation or UnaryOperation.
// The set is closed; dialect symbol tables are keyed by it.
type OpKind int

const (
	// Arithmetic
	OpAdd OpKind = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo

	// Comparison
	OpEqual
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual

	// Logical
	OpAnd
	OpOr

	// Unary
	OpPlus
	OpMinus
	OpNot
	OpPreIncrement
	OpPostIncrement
	OpPreDecrement
	OpPostDecrement

	opCount
)

var opNames = [opCount]string{
	OpAdd:           "add",
	OpSubtract:      "subtract",
	OpMultiply:      "multiply",
	OpDivide:        "divide",
	OpModulo:        "modulo",
	OpEqual:         "equal",
	OpNotEqual:      "not_equal",
	OpGreater:       "greater",
	OpLess:          "less",
	OpGreaterEqual:  "greater_equal",
	OpLessEqual:     "less_equal",
	OpAnd:           "and",
	OpOr:            "or",
	OpPlus:          "plus",
	OpMinus:         "minus",
	OpNot:           "not",
	OpPreIncrement:  "pre_increment",
	OpPostIncrement: "post_increment",
	OpPreDecrement:  "pre_decrement",
	OpPostDecrement: "post_decrement",
}

var opSymbols = [opCount]string{
	OpAdd:           "+",
	OpSubtract:      "-",
	OpMultiply:      "*",
	OpDivide:        "/",
	OpModulo:        "%",
	OpEqual:         "==",
	OpNotEqual:      "!=",
	OpGreater:       ">",
	OpLess:          "<",
	OpGreaterEqual:  ">=",
	OpLessEqual:     "<=",
	OpAnd:           "&&",
	OpOr:            "||",
	OpPlus:          "+",
	OpMinus:         "-",
	OpNot:           "!",
	OpPreIncrement:  "++",
	OpPostIncrement: "++",
	OpPreDecrement:  "--",
	OpPostDecrement: "--",
}

// AllOps returns every operation kind in declaration order.
func AllOps() []OpKind {
	ops := make([]OpKind, 0, opCount)
	for op := OpKind(0); op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Valid reports whether op is one of the declared kinds.
func (op OpKind) Valid() bool {
	return op >= 0 && op < opCount
}

// String returns the stable serialized name ("add", "pre_increment", ...).
func (op OpKind) String() string {
	if !op.Valid() {
		return fmt.Sprintf("OpKind(%d)", int(op))
	}
	return opNames[op]
}

// Symbol returns the source-language symbol for op, or "?" for an unknown kind.
func (op OpKind) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return opSymbols[op]
}

// IsArithmetic reports whether op is one of add, subtract, multiply, divide, modulo.
func (op OpKind) IsArithmetic() bool {
	return op >= OpAdd && op <= OpModulo
}

// IsBinary reports whether op is legal on a BinaryOperation.
func (op OpKind) IsBinary() bool {
	return op >= OpAdd && op <= OpOr
}

// IsUnary reports whether op is legal on a UnaryOperation.
func (op OpKind) IsUnary() bool {
	return op >= OpPlus && op < opCount
}

// ParseOpKind maps a serialized name back to its OpKind.
func ParseOpKind(name string) (OpKind, error) {
	for op, n := range opNames {
		if n == name {
			return OpKind(op), nil
		}
	}
	return 0, fmt.Errorf("unknown operation kind %q", name)
}

// MarshalText implements encoding.TextMarshaler so JSON carries the name.
func (op OpKind) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid operation kind %d", int(op))
	}
	return []byte(opNames[op]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *OpKind) UnmarshalText(text []byte) error {
	parsed, err := ParseOpKind(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
