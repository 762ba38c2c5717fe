package emit

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
	"github.com/roach88/sharpj/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// renderStmt checks s inside a method body and renders it at depth 0.
func renderStmt(t *testing.T, s ir.Statement) string {
	t.Helper()
	prog := ir.NewProgram("", ir.NewClass("C", ir.NewMethod("m", "void", nil, ir.NewBlock(s))))
	require.NoError(t, Check(prog, Java))
	return generator{d: Java}.stmt(s)
}

func TestEmitGolden(t *testing.T) {
	tests := []struct {
		name string
		prog *ir.Program
	}{
		{"calculator", testutil.Calculator("Demo")},
		{"control_flow", testutil.ControlFlow()},
		{"folding_unfolded", testutil.Folding()},
		{"folding_folded", fold.Fold(testutil.Folding())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Emit(tt.prog, Java)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestEmitCalculatorScenario(t *testing.T) {
	prog := testutil.Calculator("")
	out, err := Emit(fold.Fold(prog), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "public class Calculator {")
	assert.Contains(t, out, "public int Calculate() {")
	assert.Contains(t, out, "int a = 10;")
	assert.Contains(t, out, "int b = 5;")
	assert.Contains(t, out, "return (a + b);")
	assert.NotContains(t, out, "package")
}

func TestEmitBinaryAlwaysParenthesized(t *testing.T) {
	a := ir.NewVariable("a", "int")
	exprs := []ir.Expression{
		ir.NewBinary(a, ir.Int("1"), ir.OpAdd, "int"),
		ir.NewBinary(ir.NewBinary(a, ir.Int("1"), ir.OpMultiply, "int"), ir.Int("2"), ir.OpSubtract, "int"),
		ir.NewBinary(ir.NewUnary(a, ir.OpMinus, "int", true), ir.NewCall(nil, "f", nil, "int"), ir.OpGreaterEqual, "bool"),
		ir.NewBinary(ir.NewLiteral("true", "bool"), ir.NewBinary(a, a, ir.OpNotEqual, "bool"), ir.OpOr, "bool"),
	}

	for _, e := range exprs {
		out, err := EmitExpression(e, Java)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "("), out)
		assert.True(t, strings.HasSuffix(out, ")"), out)
	}
}

func TestEmitExpressions(t *testing.T) {
	x := ir.NewVariable("x", "int")
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"literal verbatim", ir.NewLiteral(`"hi"`, "string"), `"hi"`},
		{"variable", x, "x"},
		{"nested binary", ir.NewBinary(ir.Int("2"), ir.NewBinary(ir.Int("3"), ir.Int("4"), ir.OpMultiply, "int"), ir.OpAdd, "int"), "(2 + (3 * 4))"},
		{"logical", ir.NewBinary(ir.NewVariable("a", "bool"), ir.NewVariable("b", "bool"), ir.OpAnd, "bool"), "(a && b)"},
		{"prefix", ir.NewUnary(x, ir.OpPreIncrement, "int", true), "++x"},
		{"postfix", ir.NewUnary(x, ir.OpPostDecrement, "int", false), "x--"},
		{"not", ir.NewUnary(ir.NewVariable("ok", "bool"), ir.OpNot, "bool", true), "!ok"},
		{"minus of negative literal", ir.NewUnary(ir.Int("-5"), ir.OpMinus, "int", true), "-(-5)"},
		{"minus of minus", ir.NewUnary(ir.NewUnary(x, ir.OpMinus, "int", true), ir.OpMinus, "int", true), "-(-x)"},
		{"minus of decrement", ir.NewUnary(ir.NewUnary(x, ir.OpPreDecrement, "int", true), ir.OpMinus, "int", true), "-(--x)"},
		{"plus of plus", ir.NewUnary(ir.NewUnary(x, ir.OpPlus, "int", true), ir.OpPlus, "int", true), "+(+x)"},
		{"minus of plus", ir.NewUnary(ir.NewUnary(x, ir.OpPlus, "int", true), ir.OpMinus, "int", true), "-+x"},
		{"static call", ir.NewCall(nil, "max", []ir.Expression{x, ir.Int("1")}, "int"), "max(x, 1)"},
		{"instance call", ir.NewCall(ir.NewVariable("list", "List"), "size", nil, "int"), "list.size()"},
		{"chained call", ir.NewCall(ir.NewCall(ir.NewVariable("s", "string"), "trim", nil, "string"), "length", nil, "int"), "s.trim().length()"},
		{"call on negation", ir.NewCall(ir.NewUnary(x, ir.OpMinus, "int", true), "foo", nil, "int"), "(-x).foo()"},
		{"call on postfix", ir.NewCall(ir.NewUnary(x, ir.OpPostIncrement, "int", false), "foo", nil, "int"), "(x++).foo()"},
		{"call on binary", ir.NewCall(ir.NewBinary(x, ir.Int("1"), ir.OpAdd, "int"), "foo", nil, "int"), "(x + 1).foo()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EmitExpression(tt.expr, Java)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEmitBlockPreservesOrder(t *testing.T) {
	prog := ir.NewProgram("", ir.NewClass("C", ir.NewMethod("m", "void", nil, ir.NewBlock(
		ir.NewAssign("a", ir.Int("1")),
		ir.NewAssign("b", ir.Int("2")),
		ir.NewAssign("c", ir.Int("3")),
	))))

	out, err := Emit(prog, Java)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "        a = 1;", lines[2])
	assert.Equal(t, "        b = 2;", lines[3])
	assert.Equal(t, "        c = 3;", lines[4])
}

func TestEmitStatements(t *testing.T) {
	x := ir.NewVariable("x", "int")
	assignX := func(v string) ir.Statement { return ir.NewAssign("x", ir.Int(v)) }

	tests := []struct {
		name string
		stmt ir.Statement
		want string
	}{
		{
			"declaration without initializer",
			ir.NewVar("s", "string", nil),
			"String s;\n",
		},
		{
			"nominal type passes through",
			ir.NewVar("p", "Point", ir.NewCall(nil, "origin", nil, "Point")),
			"Point p = origin();\n",
		},
		{
			"bare return",
			ir.NewReturn(nil),
			"return;\n",
		},
		{
			"unbraced if",
			ir.NewIf(ir.NewVariable("a", "bool"), assignX("1"), nil),
			"if (a)\n    x = 1;\n",
		},
		{
			"braced if else",
			ir.NewIf(ir.NewVariable("a", "bool"), ir.NewBlock(assignX("1")), ir.NewBlock(assignX("2"))),
			"if (a) {\n    x = 1;\n} else {\n    x = 2;\n}\n",
		},
		{
			"unbraced else if chain",
			ir.NewIf(ir.NewVariable("a", "bool"), assignX("1"),
				ir.NewIf(ir.NewVariable("b", "bool"), assignX("2"), assignX("3"))),
			"if (a)\n    x = 1;\nelse if (b)\n    x = 2;\nelse\n    x = 3;\n",
		},
		{
			"braced then with unbraced else",
			ir.NewIf(ir.NewVariable("a", "bool"), ir.NewBlock(assignX("1")), assignX("2")),
			"if (a) {\n    x = 1;\n} else\n    x = 2;\n",
		},
		{
			"unbraced then with braced else",
			ir.NewIf(ir.NewVariable("a", "bool"), assignX("1"), ir.NewBlock(assignX("2"))),
			"if (a)\n    x = 1;\nelse {\n    x = 2;\n}\n",
		},
		{
			"dangling else is braced",
			ir.NewIf(ir.NewVariable("a", "bool"),
				ir.NewIf(ir.NewVariable("b", "bool"), assignX("1"), nil),
				assignX("2")),
			"if (a) {\n    if (b)\n        x = 1;\n} else\n    x = 2;\n",
		},
		{
			"dangling else through loop body",
			ir.NewIf(ir.NewVariable("a", "bool"),
				ir.NewWhile(ir.NewVariable("b", "bool"), ir.NewIf(ir.NewVariable("c", "bool"), assignX("1"), nil)),
				assignX("2")),
			"if (a) {\n    while (b)\n        if (c)\n            x = 1;\n} else\n    x = 2;\n",
		},
		{
			"nested if with its own else needs no braces",
			ir.NewIf(ir.NewVariable("a", "bool"),
				ir.NewIf(ir.NewVariable("b", "bool"), assignX("1"), ir.NewBlock(assignX("2"))),
				assignX("3")),
			"if (a)\n    if (b)\n        x = 1;\n    else {\n        x = 2;\n    }\nelse\n    x = 3;\n",
		},
		{
			"while with block",
			ir.NewWhile(ir.NewBinary(x, ir.Int("0"), ir.OpGreater, "bool"),
				ir.NewBlock(ir.NewExprStmt(ir.NewUnary(x, ir.OpPostDecrement, "int", false)))),
			"while ((x > 0)) {\n    x--;\n}\n",
		},
		{
			"empty for",
			ir.NewFor(nil, nil, nil, ir.NewBlock()),
			"for (;;) {\n}\n",
		},
		{
			"for with shared declaration",
			ir.NewFor(
				[]ir.Statement{ir.NewVar("i", "int", ir.Int("0")), ir.NewVar("j", "int", ir.Int("10"))},
				ir.NewBinary(ir.NewVariable("i", "int"), ir.NewVariable("j", "int"), ir.OpLess, "bool"),
				[]ir.Expression{
					ir.NewUnary(ir.NewVariable("i", "int"), ir.OpPostIncrement, "int", false),
					ir.NewUnary(ir.NewVariable("j", "int"), ir.OpPostDecrement, "int", false),
				},
				ir.NewBlock(),
			),
			"for (int i = 0, j = 10; (i < j); i++, j--) {\n}\n",
		},
		{
			"for with assignments and unbraced body",
			ir.NewFor(
				[]ir.Statement{ir.NewAssign("i", ir.Int("0")), ir.NewExprStmt(ir.NewCall(nil, "reset", nil, "void"))},
				nil,
				[]ir.Expression{ir.NewUnary(ir.NewVariable("i", "int"), ir.OpPreIncrement, "int", true)},
				ir.NewExprStmt(ir.NewCall(nil, "tick", nil, "void")),
			),
			"for (i = 0, reset();; ++i)\n    tick();\n",
		},
		{
			"stand-alone block",
			ir.NewBlock(ir.NewVar("t", "int", ir.Int("1")), ir.NewBlock()),
			"{\n    int t = 1;\n    {\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderStmt(t, tt.stmt))
		})
	}
}

func TestEmitNoTrailingWhitespace(t *testing.T) {
	out, err := Emit(testutil.ControlFlow(), Java)
	require.NoError(t, err)

	for i, l := range strings.Split(out, "\n") {
		assert.Equal(t, strings.TrimRight(l, " \t"), l, "line %d has trailing whitespace", i+1)
	}
}

func TestEmitMultipleClasses(t *testing.T) {
	prog := ir.NewProgram("App",
		ir.NewClass("A"),
		ir.NewClass("B", ir.NewMethod("f", "bool", []*ir.Parameter{
			ir.NewParameter("s", "string"),
			ir.NewParameter("d", "double"),
		}, ir.NewBlock(ir.NewReturn(ir.NewLiteral("false", "bool"))))),
	)

	out, err := Emit(prog, Java)
	require.NoError(t, err)
	assert.Equal(t, "package app;\n\n"+
		"public class A {\n}\n"+
		"public class B {\n"+
		"    public boolean f(String s, double d) {\n"+
		"        return false;\n"+
		"    }\n"+
		"\n"+
		"}\n", out)
}

func TestEmitDoesNotMutateInput(t *testing.T) {
	prog := testutil.ControlFlow()
	first, err := Emit(prog, Java)
	require.NoError(t, err)
	second, err := Emit(prog, Java)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmitRejectsUnsupported(t *testing.T) {
	prog := ir.NewProgram("", ir.NewClass("C", ir.NewMethod("m", "void", nil, ir.NewBlock(
		ir.NewReturn(ir.NewBinary(ir.Int("1"), ir.Int("2"), ir.OpNot, "int")),
	))))

	out, err := Emit(prog, Java)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, ErrUnsupported)
}
