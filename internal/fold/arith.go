package fold

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/sharpj/internal/ir"
)

type result int

const (
	resultFolded result = iota
	resultNotNumeric
	resultUnsupported
	resultDivByZero
	resultNonFinite
	resultSideEffect
)

// floatLiteral accepts plain decimal and exponent notation only. NaN,
// Infinity, hex floats and digit separators never fold. The only suffix
// accepted is f on float-tagged literals, stripped before matching.
var floatLiteral = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Type tags that mark a literal as floating point or as non-numeric.
var (
	floatTags      = map[string]bool{"double": true, "float": true, "decimal": true}
	nonNumericTags = map[string]bool{"string": true, "bool": true, "char": true}
	integralTags   = map[string]bool{"int": true, "long": true, "short": true, "byte": true}
)

func numeric(lit *ir.Literal) bool {
	return !nonNumericTags[lit.Type]
}

// parseInt reads an integer literal. Literals tagged as floating point are
// never integers, even when their text has no fraction.
func parseInt(lit *ir.Literal) (int64, bool) {
	if !numeric(lit) || floatTags[lit.Type] {
		return 0, false
	}
	n, err := strconv.ParseInt(lit.Value, 10, 64)
	return n, err == nil
}

// parseFloat reads a floating-point literal. Float-tagged literals are
// rounded to single precision, the value the target sees at run time.
func parseFloat(lit *ir.Literal) (float64, bool) {
	if !numeric(lit) {
		return 0, false
	}
	text, bits := lit.Value, 64
	if lit.Type == "float" {
		text, bits = strings.TrimRight(text, "fF"), 32
		if len(lit.Value)-len(text) > 1 {
			return 0, false
		}
	}
	if !floatLiteral.MatchString(text) {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, bits)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// intTag picks the tag of an integer result: the operation's own tag when it
// is integral, "int" otherwise.
func intTag(typ string) string {
	if typ == "long" {
		return "long"
	}
	return "int"
}

// wrap applies the target's integer width: "int" is 32-bit two's complement.
func wrap(n int64, tag string) int64 {
	if tag == "int" {
		return int64(int32(n))
	}
	return n
}

// floatTag applies binary numeric promotion: float when at least one operand
// is float and the rest are integral, double otherwise.
func floatTag(tags ...string) string {
	single := false
	for _, t := range tags {
		switch {
		case t == "float":
			single = true
		case !integralTags[t]:
			return "double"
		}
	}
	if single {
		return "float"
	}
	return "double"
}

// formatFloat renders f so it is never re-read as an integer literal.
// Single-precision results are rounded to float and carry an f suffix.
func formatFloat(f float64, tag string) string {
	bits := 64
	if tag == "float" {
		bits = 32
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	if tag == "float" {
		s += "f"
	}
	return s
}

func foldBinary(op ir.OpKind, l, r *ir.Literal, typ string) (*ir.Literal, result) {
	if !op.IsArithmetic() {
		return nil, resultUnsupported
	}

	if a, ok := parseInt(l); ok {
		if b, ok := parseInt(r); ok {
			return foldIntBinary(op, a, b, typ)
		}
	}

	a, aok := parseFloat(l)
	b, bok := parseFloat(r)
	if !aok || !bok {
		return nil, resultNotNumeric
	}
	return foldFloatBinary(op, a, b, floatTag(l.Type, r.Type))
}

func foldIntBinary(op ir.OpKind, a, b int64, typ string) (*ir.Literal, result) {
	var n int64
	switch op {
	case ir.OpAdd:
		n = a + b
	case ir.OpSubtract:
		n = a - b
	case ir.OpMultiply:
		n = a * b
	case ir.OpDivide:
		if b == 0 {
			return nil, resultDivByZero
		}
		n = a / b
	case ir.OpModulo:
		if b == 0 {
			return nil, resultDivByZero
		}
		n = a % b
	default:
		return nil, resultUnsupported
	}

	tag := intTag(typ)
	return ir.NewLiteral(strconv.FormatInt(wrap(n, tag), 10), tag), resultFolded
}

func foldFloatBinary(op ir.OpKind, a, b float64, tag string) (*ir.Literal, result) {
	var f float64
	switch op {
	case ir.OpAdd:
		f = a + b
	case ir.OpSubtract:
		f = a - b
	case ir.OpMultiply:
		f = a * b
	case ir.OpDivide:
		if b == 0 {
			return nil, resultDivByZero
		}
		f = a / b
	case ir.OpModulo:
		if b == 0 {
			return nil, resultDivByZero
		}
		f = math.Mod(a, b)
	default:
		return nil, resultUnsupported
	}

	if tag == "float" {
		f = float64(float32(f))
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, resultNonFinite
	}
	return ir.NewLiteral(formatFloat(f, tag), tag), resultFolded
}

func foldUnary(op ir.OpKind, lit *ir.Literal) (*ir.Literal, result) {
	switch op {
	case ir.OpPlus:
		return lit, resultFolded
	case ir.OpMinus:
		if n, ok := parseInt(lit); ok {
			tag := intTag(lit.Type)
			return ir.NewLiteral(strconv.FormatInt(wrap(-n, tag), 10), tag), resultFolded
		}
		if f, ok := parseFloat(lit); ok {
			tag := floatTag(lit.Type)
			return ir.NewLiteral(formatFloat(-f, tag), tag), resultFolded
		}
		return nil, resultNotNumeric
	case ir.OpPreIncrement, ir.OpPostIncrement, ir.OpPreDecrement, ir.OpPostDecrement:
		return nil, resultSideEffect
	default:
		return nil, resultUnsupported
	}
}
