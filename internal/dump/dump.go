// Package dump prints IR trees for humans.
//
// The output is an indented outline, two spaces per level, naming each node
// and its scalar fields with children in declaration order. Missing children
// print as <nil>, so malformed trees can be inspected too.
package dump

import (
	"fmt"
	"strings"

	"github.com/roach88/sharpj/internal/ir"
)

const indent = "  "

// Dump returns the outline of p.
func Dump(p *ir.Program) string {
	if p == nil {
		return "<nil>\n"
	}
	return ir.Accept[string](p, printer{})
}

// Node returns the outline of any single node.
func Node(n ir.Node) string {
	return printer{}.node(n)
}

type printer struct {
	depth int
}

var _ ir.Visitor[string] = printer{}

func (p printer) in() printer { return printer{depth: p.depth + 1} }

func (p printer) line(format string, args ...any) string {
	return strings.Repeat(indent, p.depth) + fmt.Sprintf(format, args...) + "\n"
}

// node prints n, tolerating nil and typed-nil children.
func (p printer) node(n ir.Node) string {
	if ir.IsNil(n) {
		return p.line("<nil>")
	}
	return ir.Accept[string](n, p)
}

// labeled prints a "Label:" line followed by n one level deeper.
func (p printer) labeled(label string, n ir.Node) string {
	return p.line("%s:", label) + p.in().node(n)
}

func (p printer) VisitProgram(prog *ir.Program) string {
	var b strings.Builder
	b.WriteString(p.line("Program"))
	in := p.in()
	if prog.Namespace != "" {
		b.WriteString(in.line("Namespace: %s", prog.Namespace))
	}
	b.WriteString(in.line("Classes: %d", len(prog.Classes)))
	for _, c := range prog.Classes {
		b.WriteString(in.node(c))
	}
	return b.String()
}

func (p printer) VisitClass(c *ir.Class) string {
	var b strings.Builder
	b.WriteString(p.line("Class: %s", c.Name))
	in := p.in()
	b.WriteString(in.line("Methods: %d", len(c.Methods)))
	for _, m := range c.Methods {
		b.WriteString(in.node(m))
	}
	return b.String()
}

func (p printer) VisitMethod(m *ir.Method) string {
	var b strings.Builder
	b.WriteString(p.line("Method: %s", m.Name))
	in := p.in()
	b.WriteString(in.line("ReturnType: %s", m.ReturnType))
	if len(m.Parameters) > 0 {
		b.WriteString(in.line("Parameters: %d", len(m.Parameters)))
		for _, param := range m.Parameters {
			b.WriteString(in.in().node(param))
		}
	}
	b.WriteString(in.labeled("Body", m.Body))
	return b.String()
}

func (p printer) VisitParameter(param *ir.Parameter) string {
	return p.line("Parameter: %s %s", param.Type, param.Name)
}

func (p printer) VisitBlock(blk *ir.Block) string {
	var b strings.Builder
	b.WriteString(p.line("Block (%d statements)", len(blk.Statements)))
	for _, s := range blk.Statements {
		b.WriteString(p.in().node(s))
	}
	return b.String()
}

func (p printer) VisitVariableDeclaration(s *ir.VariableDeclaration) string {
	out := p.line("VariableDeclaration: %s %s", s.Type, s.Name)
	if s.InitialValue != nil {
		out += p.in().labeled("InitialValue", s.InitialValue)
	}
	return out
}

func (p printer) VisitAssignment(s *ir.Assignment) string {
	return p.line("Assignment: %s =", s.Target) + p.in().node(s.Value)
}

func (p printer) VisitReturnStatement(s *ir.ReturnStatement) string {
	out := p.line("ReturnStatement")
	if s.Value != nil {
		out += p.in().node(s.Value)
	}
	return out
}

func (p printer) VisitExpressionStatement(s *ir.ExpressionStatement) string {
	return p.line("ExpressionStatement") + p.in().node(s.Expression)
}

func (p printer) VisitIfStatement(s *ir.IfStatement) string {
	var b strings.Builder
	b.WriteString(p.line("IfStatement"))
	in := p.in()
	b.WriteString(in.labeled("Condition", s.Condition))
	b.WriteString(in.labeled("Then", s.ThenBranch))
	if s.ElseBranch != nil {
		b.WriteString(in.labeled("Else", s.ElseBranch))
	}
	return b.String()
}

func (p printer) VisitWhileLoop(s *ir.WhileLoop) string {
	in := p.in()
	return p.line("WhileLoop") +
		in.labeled("Condition", s.Condition) +
		in.labeled("Body", s.Body)
}

func (p printer) VisitForLoop(s *ir.ForLoop) string {
	var b strings.Builder
	b.WriteString(p.line("ForLoop"))
	in := p.in()
	if len(s.Initializers) > 0 {
		b.WriteString(in.line("Initializers: %d", len(s.Initializers)))
		for _, init := range s.Initializers {
			b.WriteString(in.in().node(init))
		}
	}
	if s.Condition != nil {
		b.WriteString(in.labeled("Condition", s.Condition))
	}
	if len(s.Incrementors) > 0 {
		b.WriteString(in.line("Incrementors: %d", len(s.Incrementors)))
		for _, inc := range s.Incrementors {
			b.WriteString(in.in().node(inc))
		}
	}
	b.WriteString(in.labeled("Body", s.Body))
	return b.String()
}

func (p printer) VisitLiteral(e *ir.Literal) string {
	return p.line("Literal: %s (Type: %s)", e.Value, e.Type)
}

func (p printer) VisitVariable(e *ir.Variable) string {
	return p.line("Variable: %s (Type: %s)", e.Name, e.Type)
}

func (p printer) VisitBinaryOperation(e *ir.BinaryOperation) string {
	in := p.in()
	return p.line("BinaryOperation: %s (Type: %s)", e.Op.Symbol(), e.Type) +
		in.labeled("Left", e.Left) +
		in.labeled("Right", e.Right)
}

func (p printer) VisitUnaryOperation(e *ir.UnaryOperation) string {
	fix := "Postfix"
	if e.Prefix {
		fix = "Prefix"
	}
	return p.line("UnaryOperation: %s %s (Type: %s)", fix, e.Op.Symbol(), e.Type) + p.in().node(e.Operand)
}

func (p printer) VisitMethodCall(e *ir.MethodCall) string {
	var b strings.Builder
	b.WriteString(p.line("MethodCall: %s (Type: %s)", e.Name, e.Type))
	in := p.in()
	if e.Target != nil {
		b.WriteString(in.labeled("Target", e.Target))
	}
	if len(e.Arguments) > 0 {
		b.WriteString(in.line("Arguments: %d", len(e.Arguments)))
		for _, arg := range e.Arguments {
			b.WriteString(in.in().node(arg))
		}
	}
	return b.String()
}
