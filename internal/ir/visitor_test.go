package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder visits every node in declaration order and records its kind.
type recorder struct {
	seen *[]string
}

func (r recorder) add(kind string) int {
	*r.seen = append(*r.seen, kind)
	return len(*r.seen)
}

func (r recorder) VisitProgram(p *Program) int {
	r.add("program")
	for _, c := range p.Classes {
		Accept[int](c, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitClass(c *Class) int {
	r.add("class:" + c.Name)
	for _, m := range c.Methods {
		Accept[int](m, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitMethod(m *Method) int {
	r.add("method:" + m.Name)
	for _, p := range m.Parameters {
		Accept[int](p, r)
	}
	return Accept[int](m.Body, r)
}

func (r recorder) VisitParameter(p *Parameter) int { return r.add("param:" + p.Name) }

func (r recorder) VisitBlock(b *Block) int {
	r.add("block")
	for _, s := range b.Statements {
		AcceptStatement[int](s, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitVariableDeclaration(s *VariableDeclaration) int {
	r.add("var:" + s.Name)
	if s.InitialValue != nil {
		AcceptExpression[int](s.InitialValue, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitAssignment(s *Assignment) int {
	r.add("assign:" + s.Target)
	return AcceptExpression[int](s.Value, r)
}

func (r recorder) VisitReturnStatement(s *ReturnStatement) int {
	r.add("return")
	if s.Value != nil {
		AcceptExpression[int](s.Value, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitExpressionStatement(s *ExpressionStatement) int {
	r.add("expr")
	return AcceptExpression[int](s.Expression, r)
}

func (r recorder) VisitIfStatement(s *IfStatement) int {
	r.add("if")
	AcceptExpression[int](s.Condition, r)
	AcceptStatement[int](s.ThenBranch, r)
	if s.ElseBranch != nil {
		AcceptStatement[int](s.ElseBranch, r)
	}
	return len(*r.seen)
}

func (r recorder) VisitWhileLoop(s *WhileLoop) int {
	r.add("while")
	AcceptExpression[int](s.Condition, r)
	return AcceptStatement[int](s.Body, r)
}

func (r recorder) VisitForLoop(s *ForLoop) int {
	r.add("for")
	for _, init := range s.Initializers {
		AcceptStatement[int](init, r)
	}
	if s.Condition != nil {
		AcceptExpression[int](s.Condition, r)
	}
	for _, inc := range s.Incrementors {
		AcceptExpression[int](inc, r)
	}
	return AcceptStatement[int](s.Body, r)
}

func (r recorder) VisitLiteral(e *Literal) int   { return r.add("lit:" + e.Value) }
func (r recorder) VisitVariable(e *Variable) int { return r.add("ref:" + e.Name) }

func (r recorder) VisitBinaryOperation(e *BinaryOperation) int {
	r.add("binary:" + e.Op.String())
	AcceptExpression[int](e.Left, r)
	return AcceptExpression[int](e.Right, r)
}

func (r recorder) VisitUnaryOperation(e *UnaryOperation) int {
	r.add("unary:" + e.Op.String())
	return AcceptExpression[int](e.Operand, r)
}

func (r recorder) VisitMethodCall(e *MethodCall) int {
	r.add("call:" + e.Name)
	if e.Target != nil {
		AcceptExpression[int](e.Target, r)
	}
	for _, a := range e.Arguments {
		AcceptExpression[int](a, r)
	}
	return len(*r.seen)
}

func TestAcceptDispatchesInDeclarationOrder(t *testing.T) {
	i := NewVariable("i", "int")
	prog := NewProgram("",
		NewClass("C",
			NewMethod("m", "void", []*Parameter{NewParameter("n", "int")}, NewBlock(
				NewIf(
					NewBinary(i, Int("0"), OpGreater, "bool"),
					NewBlock(NewAssign("i", Int("1"))),
					NewIf(NewVariable("ok", "bool"), NewReturn(nil), NewExprStmt(NewCall(nil, "f", nil, "void"))),
				),
				NewWhile(NewVariable("ok", "bool"), NewExprStmt(NewUnary(i, OpPostIncrement, "int", false))),
				NewFor(
					[]Statement{NewVar("k", "int", Int("0"))},
					NewBinary(NewVariable("k", "int"), NewVariable("n", "int"), OpLess, "bool"),
					[]Expression{NewUnary(NewVariable("k", "int"), OpPreIncrement, "int", true)},
					NewBlock(),
				),
			)),
		),
	)

	var seen []string
	Accept[int](prog, recorder{seen: &seen})

	assert.Equal(t, []string{
		"program", "class:C", "method:m", "param:n", "block",
		"if", "binary:greater", "ref:i", "lit:0", "block", "assign:i", "lit:1",
		"if", "ref:ok", "return", "expr", "call:f",
		"while", "ref:ok", "expr", "unary:post_increment", "ref:i",
		"for", "var:k", "lit:0", "binary:less", "ref:k", "ref:n", "unary:pre_increment", "ref:k", "block",
	}, seen)
}

func TestAcceptNilPanics(t *testing.T) {
	var seen []string
	assert.Panics(t, func() {
		AcceptStatement[int](nil, recorder{seen: &seen})
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindBinary, KindOf(NewBinary(Int("1"), Int("2"), OpAdd, "int")))
	assert.Equal(t, KindFor, KindOf(NewFor(nil, nil, nil, NewBlock())))
	assert.Equal(t, "method", KindOf(NewMethod("m", "void", nil, nil)))
	assert.Equal(t, "nil", KindOf(nil))
}

func TestIsNil(t *testing.T) {
	var block *Block
	var call *MethodCall
	var stmt Statement = block

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(block))
	assert.True(t, IsNil(call))
	assert.True(t, IsNil(stmt))
	assert.True(t, stmt != nil)
	assert.False(t, IsNil(NewBlock()))
	assert.False(t, IsNil(Int("1")))
}

func TestExpressionTypeTags(t *testing.T) {
	exprs := []Expression{
		NewLiteral("1.5", "double"),
		NewVariable("s", "string"),
		NewBinary(Int("1"), Int("2"), OpLess, "bool"),
		NewUnary(Int("1"), OpMinus, "int", true),
		NewCall(nil, "f", nil, "long"),
	}
	want := []string{"double", "string", "bool", "int", "long"}
	for i, e := range exprs {
		assert.Equal(t, want[i], e.TypeTag())
	}
}
