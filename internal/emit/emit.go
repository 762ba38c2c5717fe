package emit

import (
	"strings"

	"github.com/roach88/sharpj/internal/ir"
)

// Emit renders p as source text in dialect d. A nil dialect means Java.
//
// The tree is checked first; if any construct cannot be rendered the
// returned error is an *UnsupportedNodeError and no text is produced.
func Emit(p *ir.Program, d *Dialect) (string, error) {
	if d == nil {
		d = Java
	}
	if err := Check(p, d); err != nil {
		return "", err
	}
	return ir.Accept[string](p, generator{d: d}), nil
}

// EmitExpression renders a single expression.
func EmitExpression(e ir.Expression, d *Dialect) (string, error) {
	if d == nil {
		d = Java
	}
	if e == nil {
		return "", &UnsupportedNodeError{Kind: "expression", Reason: "missing expression"}
	}
	if err := (checker{d: d}).expr(e); err != nil {
		return "", err
	}
	return generator{d: d}.expr(e), nil
}

// generator renders one node at a given nesting depth. Statement and
// structure visits return whole lines; expression visits return inline text.
type generator struct {
	d     *Dialect
	depth int
}

var _ ir.Visitor[string] = generator{}

func (g generator) nested() generator {
	return generator{d: g.d, depth: g.depth + 1}
}

// line renders one output line. Empty lines carry no indentation.
func (g generator) line(s string) string {
	if s == "" {
		return "\n"
	}
	return strings.Repeat(g.d.Indent, g.depth) + s + "\n"
}

func (g generator) stmt(s ir.Statement) string {
	return ir.AcceptStatement[string](s, g)
}

func (g generator) expr(e ir.Expression) string {
	return ir.AcceptExpression[string](e, g)
}

func (g generator) statements(stmts []ir.Statement) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(g.stmt(s))
	}
	return b.String()
}

func (g generator) exprList(exprs []ir.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = g.expr(e)
	}
	return strings.Join(parts, ", ")
}

// body renders a control-statement header and its body. A Block body is
// braced; any other statement goes unbraced on its own indented line.
func (g generator) body(header string, s ir.Statement) string {
	if b, ok := s.(*ir.Block); ok {
		return g.line(header+" {") + g.nested().statements(b.Statements) + g.line("}")
	}
	return g.line(header) + g.nested().stmt(s)
}

// Structure

func (g generator) VisitProgram(p *ir.Program) string {
	var b strings.Builder
	if p.Namespace != "" {
		b.WriteString(g.line(g.d.moduleDecl(p.Namespace)))
		b.WriteString(g.line(""))
	}
	for _, c := range p.Classes {
		b.WriteString(g.VisitClass(c))
	}
	return b.String()
}

func (g generator) VisitClass(c *ir.Class) string {
	var b strings.Builder
	b.WriteString(g.line("public class " + c.Name + " {"))
	for _, m := range c.Methods {
		b.WriteString(g.nested().VisitMethod(m))
		b.WriteString(g.line(""))
	}
	b.WriteString(g.line("}"))
	return b.String()
}

func (g generator) VisitMethod(m *ir.Method) string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = g.VisitParameter(p)
	}
	header := "public " + g.d.MapType(m.ReturnType) + " " + m.Name + "(" + strings.Join(params, ", ") + ")"
	return g.body(header, m.Body)
}

func (g generator) VisitParameter(p *ir.Parameter) string {
	return g.d.MapType(p.Type) + " " + p.Name
}

// Statements

// VisitBlock renders a stand-alone nested block. Blocks that form the body of
// a method or control statement are rendered by body.
func (g generator) VisitBlock(b *ir.Block) string {
	return g.line("{") + g.nested().statements(b.Statements) + g.line("}")
}

func (g generator) VisitVariableDeclaration(s *ir.VariableDeclaration) string {
	return g.line(g.declaration(s, true) + ";")
}

func (g generator) declaration(s *ir.VariableDeclaration, typed bool) string {
	text := s.Name
	if typed {
		text = g.d.MapType(s.Type) + " " + text
	}
	if s.InitialValue != nil {
		text += " = " + g.expr(s.InitialValue)
	}
	return text
}

func (g generator) VisitAssignment(s *ir.Assignment) string {
	return g.line(g.assignment(s) + ";")
}

func (g generator) assignment(s *ir.Assignment) string {
	return s.Target + " = " + g.expr(s.Value)
}

func (g generator) VisitReturnStatement(s *ir.ReturnStatement) string {
	if s.Value == nil {
		return g.line("return;")
	}
	return g.line("return " + g.expr(s.Value) + ";")
}

func (g generator) VisitExpressionStatement(s *ir.ExpressionStatement) string {
	return g.line(g.expr(s.Expression) + ";")
}

func (g generator) VisitIfStatement(s *ir.IfStatement) string {
	return g.ifChain(s, "")
}

// ifChain renders s with lead ("", "else " or "} else ") before its "if".
func (g generator) ifChain(s *ir.IfStatement, lead string) string {
	var b strings.Builder
	header := lead + "if (" + g.expr(s.Condition) + ")"

	then, thenIsBlock := s.ThenBranch.(*ir.Block)
	braced := thenIsBlock || (s.ElseBranch != nil && opensElse(s.ThenBranch))
	switch {
	case thenIsBlock:
		b.WriteString(g.line(header + " {"))
		b.WriteString(g.nested().statements(then.Statements))
	case braced:
		b.WriteString(g.line(header + " {"))
		b.WriteString(g.nested().stmt(s.ThenBranch))
	default:
		b.WriteString(g.line(header))
		b.WriteString(g.nested().stmt(s.ThenBranch))
	}

	if s.ElseBranch == nil {
		if braced {
			b.WriteString(g.line("}"))
		}
		return b.String()
	}

	elseLead := "else "
	if braced {
		elseLead = "} else "
	}
	switch e := s.ElseBranch.(type) {
	case *ir.IfStatement:
		b.WriteString(g.ifChain(e, elseLead))
	case *ir.Block:
		b.WriteString(g.line(elseLead + "{"))
		b.WriteString(g.nested().statements(e.Statements))
		b.WriteString(g.line("}"))
	default:
		b.WriteString(g.line(strings.TrimSuffix(elseLead, " ")))
		b.WriteString(g.nested().stmt(e))
	}
	return b.String()
}

// opensElse reports whether s, rendered unbraced in front of an "else",
// would capture that else itself.
func opensElse(s ir.Statement) bool {
	switch s := s.(type) {
	case *ir.IfStatement:
		if s.ElseBranch == nil {
			return true
		}
		return opensElse(s.ElseBranch)
	case *ir.WhileLoop:
		return opensElse(s.Body)
	case *ir.ForLoop:
		return opensElse(s.Body)
	default:
		return false
	}
}

func (g generator) VisitWhileLoop(s *ir.WhileLoop) string {
	return g.body("while ("+g.expr(s.Condition)+")", s.Body)
}

func (g generator) VisitForLoop(s *ir.ForLoop) string {
	header := "for (" + g.forInit(s.Initializers) + ";"
	if s.Condition != nil {
		header += " " + g.expr(s.Condition)
	}
	header += ";"
	if len(s.Incrementors) > 0 {
		header += " " + g.exprList(s.Incrementors)
	}
	return g.body(header+")", s.Body)
}

// forInit renders for-loop initializers. Declarations share one type, so
// only the first carries it: "int i = 0, j = 10".
func (g generator) forInit(inits []ir.Statement) string {
	parts := make([]string, len(inits))
	for i, s := range inits {
		switch s := s.(type) {
		case *ir.VariableDeclaration:
			parts[i] = g.declaration(s, i == 0)
		case *ir.Assignment:
			parts[i] = g.assignment(s)
		case *ir.ExpressionStatement:
			parts[i] = g.expr(s.Expression)
		}
	}
	return strings.Join(parts, ", ")
}

// Expressions

func (g generator) VisitLiteral(e *ir.Literal) string {
	return e.Value
}

func (g generator) VisitVariable(e *ir.Variable) string {
	return e.Name
}

func (g generator) VisitBinaryOperation(e *ir.BinaryOperation) string {
	sym, _ := g.d.Symbol(e.Op)
	return "(" + g.expr(e.Left) + " " + sym + " " + g.expr(e.Right) + ")"
}

func (g generator) VisitUnaryOperation(e *ir.UnaryOperation) string {
	sym, _ := g.d.Symbol(e.Op)
	operand := g.expr(e.Operand)
	if !e.Prefix {
		return operand + sym
	}
	// "-" followed by "-5" would lex as a decrement.
	if operand != "" && sym != "" {
		last, first := sym[len(sym)-1], operand[0]
		if last == first && (first == '-' || first == '+') {
			return sym + "(" + operand + ")"
		}
	}
	return sym + operand
}

func (g generator) VisitMethodCall(e *ir.MethodCall) string {
	var b strings.Builder
	if e.Target != nil {
		target := g.expr(e.Target)
		// "-x.f()" would call f on x and negate the result.
		if _, ok := e.Target.(*ir.UnaryOperation); ok {
			target = "(" + target + ")"
		}
		b.WriteString(target)
		b.WriteString(".")
	}
	b.WriteString(e.Name)
	b.WriteString("(")
	b.WriteString(g.exprList(e.Arguments))
	b.WriteString(")")
	return b.String()
}
