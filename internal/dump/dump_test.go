package dump

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/sharpj/internal/ir"
	"github.com/roach88/sharpj/internal/testutil"
)

func TestDumpGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "calculator", []byte(Dump(testutil.Calculator("Demo"))))
}

func TestDumpNodes(t *testing.T) {
	i := ir.NewVariable("i", "int")

	tests := []struct {
		name string
		node ir.Node
		want string
	}{
		{
			name: "for loop",
			node: ir.NewFor(
				[]ir.Statement{ir.NewVar("i", "int", ir.Int("0"))},
				ir.NewBinary(i, ir.NewVariable("n", "int"), ir.OpLess, "bool"),
				[]ir.Expression{ir.NewUnary(i, ir.OpPostIncrement, "int", false)},
				ir.NewBlock(),
			),
			want: `ForLoop
  Initializers: 1
    VariableDeclaration: int i
      InitialValue:
        Literal: 0 (Type: int)
  Condition:
    BinaryOperation: < (Type: bool)
      Left:
        Variable: i (Type: int)
      Right:
        Variable: n (Type: int)
  Incrementors: 1
    UnaryOperation: Postfix ++ (Type: int)
      Variable: i (Type: int)
  Body:
    Block (0 statements)
`,
		},
		{
			name: "call",
			node: ir.NewCall(ir.NewVariable("System.out", "PrintStream"), "println",
				[]ir.Expression{ir.NewLiteral(`"hi"`, "string")}, "void"),
			want: `MethodCall: println (Type: void)
  Target:
    Variable: System.out (Type: PrintStream)
  Arguments: 1
    Literal: "hi" (Type: string)
`,
		},
		{
			name: "if else",
			node: ir.NewIf(ir.NewVariable("a", "bool"), ir.NewReturn(nil), ir.NewAssign("x", ir.Int("1"))),
			want: `IfStatement
  Condition:
    Variable: a (Type: bool)
  Then:
    ReturnStatement
  Else:
    Assignment: x =
      Literal: 1 (Type: int)
`,
		},
		{
			name: "prefix unary",
			node: ir.NewUnary(ir.NewVariable("ok", "bool"), ir.OpNot, "bool", true),
			want: "UnaryOperation: Prefix ! (Type: bool)\n  Variable: ok (Type: bool)\n",
		},
		{
			name: "method with parameters",
			node: ir.NewMethod("f", "void", []*ir.Parameter{ir.NewParameter("n", "int")}, nil),
			want: `Method: f
  ReturnType: void
  Parameters: 1
    Parameter: int n
  Body:
    Block (0 statements)
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Node(tt.node))
		})
	}
}

func TestDumpToleratesMissingChildren(t *testing.T) {
	assert.Equal(t, "<nil>\n", Dump(nil))
	assert.Equal(t, "IfStatement\n  Condition:\n    <nil>\n  Then:\n    <nil>\n", Node(ir.NewIf(nil, nil, nil)))

	prog := ir.NewProgram("", nil, ir.NewClass("C", &ir.Method{Name: "m", ReturnType: "void"}))
	assert.Equal(t, `Program
  Classes: 2
  <nil>
  Class: C
    Methods: 1
    Method: m
      ReturnType: void
      Body:
        <nil>
`, Dump(prog))
}

func TestDumpToleratesTypedNilChildren(t *testing.T) {
	var missingBlock *ir.Block
	var missingVar *ir.Variable

	got := Node(ir.NewIf(missingVar, ir.NewBlock(), missingBlock))
	assert.Equal(t, "IfStatement\n  Condition:\n    <nil>\n  Then:\n    Block (0 statements)\n  Else:\n    <nil>\n", got)
}
