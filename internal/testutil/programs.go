package testutil

import "github.com/roach88/sharpj/internal/ir"

// Calculator returns the canonical end-to-end fixture:
//
//	class Calculator { int Calculate() { int a = 10; int b = 5; return a + b; } }
func Calculator(namespace string) *ir.Program {
	return ir.NewProgram(namespace,
		ir.NewClass("Calculator",
			ir.NewMethod("Calculate", "int", nil, ir.NewBlock(
				ir.NewVar("a", "int", ir.Int("10")),
				ir.NewVar("b", "int", ir.Int("5")),
				ir.NewReturn(ir.NewBinary(
					ir.NewVariable("a", "int"),
					ir.NewVariable("b", "int"),
					ir.OpAdd, "int",
				)),
			)),
		),
	)
}

// ControlFlow returns a program exercising every statement variant: an
// else-if chain, unbraced branches, while and for loops, and calls with and
// without a target.
func ControlFlow() *ir.Program {
	n := ir.NewVariable("n", "int")
	i := ir.NewVariable("i", "int")
	total := ir.NewVariable("total", "int")

	sum := ir.NewMethod("Sum", "int", []*ir.Parameter{ir.NewParameter("n", "int")}, ir.NewBlock(
		ir.NewVar("total", "int", ir.Int("0")),
		ir.NewFor(
			[]ir.Statement{ir.NewVar("i", "int", ir.Int("0"))},
			ir.NewBinary(i, n, ir.OpLess, "bool"),
			[]ir.Expression{ir.NewUnary(i, ir.OpPostIncrement, "int", false)},
			ir.NewBlock(
				ir.NewIf(
					ir.NewBinary(ir.NewBinary(i, ir.Int("2"), ir.OpModulo, "int"), ir.Int("0"), ir.OpEqual, "bool"),
					ir.NewAssign("total", ir.NewBinary(total, i, ir.OpAdd, "int")),
					ir.NewAssign("total", ir.NewBinary(total, ir.Int("1"), ir.OpSubtract, "int")),
				),
			),
		),
		ir.NewWhile(
			ir.NewBinary(total, ir.Int("100"), ir.OpGreater, "bool"),
			ir.NewBlock(ir.NewAssign("total", ir.NewBinary(total, ir.Int("2"), ir.OpDivide, "int"))),
		),
		ir.NewReturn(total),
	))

	describe := ir.NewMethod("Describe", "string", []*ir.Parameter{ir.NewParameter("n", "int")}, ir.NewBlock(
		ir.NewIf(
			ir.NewBinary(n, ir.Int("0"), ir.OpLess, "bool"),
			ir.NewBlock(ir.NewReturn(ir.NewLiteral(`"negative"`, "string"))),
			ir.NewIf(
				ir.NewBinary(n, ir.Int("0"), ir.OpEqual, "bool"),
				ir.NewBlock(ir.NewReturn(ir.NewLiteral(`"zero"`, "string"))),
				ir.NewBlock(ir.NewReturn(ir.NewLiteral(`"positive"`, "string"))),
			),
		),
	))

	run := ir.NewMethod("Run", "void", nil, ir.NewBlock(
		ir.NewVar("ok", "bool", ir.NewLiteral("true", "bool")),
		ir.NewExprStmt(ir.NewCall(
			ir.NewVariable("System.out", "PrintStream"), "println",
			[]ir.Expression{ir.NewCall(nil, "Describe", []ir.Expression{ir.NewCall(nil, "Sum", []ir.Expression{ir.Int("10")}, "int")}, "string")},
			"void",
		)),
		ir.NewWhile(
			ir.NewUnary(ir.NewVariable("ok", "bool"), ir.OpNot, "bool", true),
			ir.NewAssign("ok", ir.NewLiteral("true", "bool")),
		),
	))

	return ir.NewProgram("Demo.Flow", ir.NewClass("Loops", sum, describe, run))
}

// Folding returns a program whose expressions mix foldable and unfoldable
// operations:
//
//	int x = 2 + 3 * 4;      // folds to 14
//	double y = 1.5 * 2;     // folds to 3.0
//	int z = -(-5);          // folds to 5
//	int q = x / 0;          // kept: division by zero
//	int r = (10 / 0) + 1;   // kept: division by zero
//	++x;                    // kept: increment
//	return x + (4 - 1);     // becomes x + 3
func Folding() *ir.Program {
	x := ir.NewVariable("x", "int")

	return ir.NewProgram("",
		ir.NewClass("Folding",
			ir.NewMethod("Compute", "int", nil, ir.NewBlock(
				ir.NewVar("x", "int", ir.NewBinary(
					ir.Int("2"),
					ir.NewBinary(ir.Int("3"), ir.Int("4"), ir.OpMultiply, "int"),
					ir.OpAdd, "int",
				)),
				ir.NewVar("y", "double", ir.NewBinary(
					ir.NewLiteral("1.5", "double"), ir.Int("2"), ir.OpMultiply, "double",
				)),
				ir.NewVar("z", "int", ir.NewUnary(
					ir.NewUnary(ir.Int("5"), ir.OpMinus, "int", true),
					ir.OpMinus, "int", true,
				)),
				ir.NewVar("q", "int", ir.NewBinary(x, ir.Int("0"), ir.OpDivide, "int")),
				ir.NewVar("r", "int", ir.NewBinary(
					ir.NewBinary(ir.Int("10"), ir.Int("0"), ir.OpDivide, "int"),
					ir.Int("1"),
					ir.OpAdd, "int",
				)),
				ir.NewExprStmt(ir.NewUnary(x, ir.OpPreIncrement, "int", true)),
				ir.NewReturn(ir.NewBinary(
					x,
					ir.NewBinary(ir.Int("4"), ir.Int("1"), ir.OpSubtract, "int"),
					ir.OpAdd, "int",
				)),
			)),
		),
	)
}
