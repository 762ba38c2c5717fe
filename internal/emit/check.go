package emit

import (
	"errors"
	"fmt"

	"github.com/roach88/sharpj/internal/ir"
)

// ErrUnsupported matches every *UnsupportedNodeError via errors.Is.
var ErrUnsupported = errors.New("unsupported node")

// UnsupportedNodeError reports a construct the target dialect cannot express.
type UnsupportedNodeError struct {
	Kind   string // node kind, see ir.KindOf
	Path   string // location in the tree, e.g. classes[0].methods[1].body.statements[2]
	Reason string
}

func (e *UnsupportedNodeError) Error() string {
	path := e.Path
	if path == "" {
		path = "program"
	}
	return fmt.Sprintf("unsupported %s at %s: %s", e.Kind, path, e.Reason)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedNodeError) Is(target error) bool {
	return target == ErrUnsupported
}

// Check reports the first construct in p that d cannot render, in traversal
// order. A nil error means Emit will succeed.
func Check(p *ir.Program, d *Dialect) error {
	if p == nil {
		return &UnsupportedNodeError{Kind: "program", Reason: "missing program"}
	}
	return ir.Accept[error](p, checker{d: d})
}

// checker is the emission pre-check visitor. It carries the path of the
// node being visited.
type checker struct {
	d    *Dialect
	path string
}

var _ ir.Visitor[error] = checker{}

func (c checker) at(segment string) checker {
	if c.path == "" {
		return checker{d: c.d, path: segment}
	}
	return checker{d: c.d, path: c.path + "." + segment}
}

func (c checker) index(segment string, i int) checker {
	return c.at(fmt.Sprintf("%s[%d]", segment, i))
}

func (c checker) fail(kind string, format string, args ...any) error {
	return &UnsupportedNodeError{Kind: kind, Path: c.path, Reason: fmt.Sprintf(format, args...)}
}

func (c checker) stmt(s ir.Statement) error {
	if ir.IsNil(s) {
		return c.fail("statement", "missing statement")
	}
	return ir.AcceptStatement[error](s, c)
}

func (c checker) expr(e ir.Expression) error {
	if ir.IsNil(e) {
		return c.fail("expression", "missing expression")
	}
	return ir.AcceptExpression[error](e, c)
}

func (c checker) VisitProgram(p *ir.Program) error {
	for i, cl := range p.Classes {
		if cl == nil {
			return c.index("classes", i).fail("class", "missing class")
		}
		if err := c.index("classes", i).VisitClass(cl); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) VisitClass(cl *ir.Class) error {
	for i, m := range cl.Methods {
		if m == nil {
			return c.index("methods", i).fail("method", "missing method")
		}
		if err := c.index("methods", i).VisitMethod(m); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) VisitMethod(m *ir.Method) error {
	for i, p := range m.Parameters {
		if p == nil {
			return c.index("parameters", i).fail("parameter", "missing parameter")
		}
	}
	if m.Body == nil {
		return c.fail("method", "missing body")
	}
	return c.at("body").VisitBlock(m.Body)
}

func (c checker) VisitParameter(*ir.Parameter) error { return nil }

func (c checker) VisitBlock(b *ir.Block) error {
	for i, s := range b.Statements {
		next := c.index("statements", i)
		if s == nil {
			return next.fail("statement", "missing statement")
		}
		if err := next.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) VisitVariableDeclaration(s *ir.VariableDeclaration) error {
	if s.InitialValue == nil {
		return nil
	}
	return c.at("initial_value").expr(s.InitialValue)
}

func (c checker) VisitAssignment(s *ir.Assignment) error {
	if s.Value == nil {
		return c.fail(ir.KindOf(s), "missing value")
	}
	return c.at("value").expr(s.Value)
}

func (c checker) VisitReturnStatement(s *ir.ReturnStatement) error {
	if s.Value == nil {
		return nil
	}
	return c.at("value").expr(s.Value)
}

func (c checker) VisitExpressionStatement(s *ir.ExpressionStatement) error {
	if s.Expression == nil {
		return c.fail(ir.KindOf(s), "missing expression")
	}
	return c.at("expression").expr(s.Expression)
}

func (c checker) VisitIfStatement(s *ir.IfStatement) error {
	if s.Condition == nil {
		return c.fail(ir.KindOf(s), "missing condition")
	}
	if s.ThenBranch == nil {
		return c.fail(ir.KindOf(s), "missing then branch")
	}
	if err := c.at("condition").expr(s.Condition); err != nil {
		return err
	}
	if err := c.at("then_branch").stmt(s.ThenBranch); err != nil {
		return err
	}
	if s.ElseBranch == nil {
		return nil
	}
	return c.at("else_branch").stmt(s.ElseBranch)
}

func (c checker) VisitWhileLoop(s *ir.WhileLoop) error {
	if s.Condition == nil {
		return c.fail(ir.KindOf(s), "missing condition")
	}
	if s.Body == nil {
		return c.fail(ir.KindOf(s), "missing body")
	}
	if err := c.at("condition").expr(s.Condition); err != nil {
		return err
	}
	return c.at("body").stmt(s.Body)
}

// VisitForLoop also enforces the shape of a for-header: initializers are
// either declarations sharing one type, or assignments and expressions.
func (c checker) VisitForLoop(s *ir.ForLoop) error {
	var declType string
	decls, others := 0, 0
	for i, init := range s.Initializers {
		next := c.index("initializers", i)
		switch v := init.(type) {
		case nil:
			return next.fail("statement", "missing initializer")
		case *ir.VariableDeclaration:
			if decls > 0 && v.Type != declType {
				return next.fail(ir.KindOf(init), "declaration of type %q cannot share a for-initializer with type %q", v.Type, declType)
			}
			declType = v.Type
			decls++
		case *ir.Assignment, *ir.ExpressionStatement:
			others++
		default:
			return next.fail(ir.KindOf(init), "%s statement cannot appear in a for-initializer", ir.KindOf(init))
		}
		if decls > 0 && others > 0 {
			return next.fail(ir.KindOf(init), "for-initializer cannot mix declarations with other statements")
		}
		if err := next.stmt(init); err != nil {
			return err
		}
	}
	if s.Condition != nil {
		if err := c.at("condition").expr(s.Condition); err != nil {
			return err
		}
	}
	for i, inc := range s.Incrementors {
		next := c.index("incrementors", i)
		if inc == nil {
			return next.fail("expression", "missing incrementor")
		}
		if err := next.expr(inc); err != nil {
			return err
		}
	}
	if s.Body == nil {
		return c.fail(ir.KindOf(s), "missing body")
	}
	return c.at("body").stmt(s.Body)
}

func (c checker) VisitLiteral(*ir.Literal) error   { return nil }
func (c checker) VisitVariable(*ir.Variable) error { return nil }

func (c checker) VisitBinaryOperation(e *ir.BinaryOperation) error {
	if !e.Op.IsBinary() {
		return c.fail(ir.KindOf(e), "operation %s is not binary", e.Op)
	}
	if _, ok := c.d.Symbol(e.Op); !ok {
		return c.fail(ir.KindOf(e), "operation %s has no %s spelling", e.Op, c.d.Name)
	}
	if e.Left == nil {
		return c.fail(ir.KindOf(e), "missing left operand")
	}
	if e.Right == nil {
		return c.fail(ir.KindOf(e), "missing right operand")
	}
	if err := c.at("left").expr(e.Left); err != nil {
		return err
	}
	return c.at("right").expr(e.Right)
}

func (c checker) VisitUnaryOperation(e *ir.UnaryOperation) error {
	if !e.Op.IsUnary() {
		return c.fail(ir.KindOf(e), "operation %s is not unary", e.Op)
	}
	if _, ok := c.d.Symbol(e.Op); !ok {
		return c.fail(ir.KindOf(e), "operation %s has no %s spelling", e.Op, c.d.Name)
	}
	if e.Operand == nil {
		return c.fail(ir.KindOf(e), "missing operand")
	}
	return c.at("operand").expr(e.Operand)
}

func (c checker) VisitMethodCall(e *ir.MethodCall) error {
	if e.Target != nil {
		if err := c.at("target").expr(e.Target); err != nil {
			return err
		}
	}
	for i, arg := range e.Arguments {
		next := c.index("arguments", i)
		if arg == nil {
			return next.fail("expression", "missing argument")
		}
		if err := next.expr(arg); err != nil {
			return err
		}
	}
	return nil
}
