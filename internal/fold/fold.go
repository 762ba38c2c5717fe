package fold

import (
	"github.com/roach88/sharpj/internal/ir"
)

// Stats counts folding outcomes for one run.
type Stats struct {
	BinaryFolded          int `json:"binary_folded"`
	UnaryFolded           int `json:"unary_folded"`
	DivisionByZeroSkipped int `json:"division_by_zero_skipped"`
	Unfoldable            int `json:"unfoldable"` // literal operands the pass had to leave alone
}

// Folded returns the total number of operations replaced by literals.
func (s Stats) Folded() int {
	return s.BinaryFolded + s.UnaryFolded
}

// Fold returns a folded copy of p.
func Fold(p *ir.Program) *ir.Program {
	out, _ := FoldWithStats(p)
	return out
}

// FoldWithStats returns a folded copy of p together with folding statistics.
// A nil program folds to nil.
func FoldWithStats(p *ir.Program) (*ir.Program, Stats) {
	if p == nil {
		return nil, Stats{}
	}
	f := &folder{}
	out := ir.Accept[ir.Node](p, f).(*ir.Program)
	return out, f.stats
}

// FoldExpression folds a single expression tree.
func FoldExpression(e ir.Expression) ir.Expression {
	f := &folder{}
	return f.expr(e)
}

// folder is the folding visitor. Each run gets its own folder; only the
// statistics are mutable.
type folder struct {
	stats Stats
}

var _ ir.Visitor[ir.Node] = (*folder)(nil)

func (f *folder) expr(e ir.Expression) ir.Expression {
	if ir.IsNil(e) {
		return nil
	}
	return ir.AcceptExpression[ir.Node](e, f).(ir.Expression)
}

func (f *folder) stmt(s ir.Statement) ir.Statement {
	if ir.IsNil(s) {
		return nil
	}
	return ir.AcceptStatement[ir.Node](s, f).(ir.Statement)
}

func (f *folder) block(b *ir.Block) *ir.Block {
	if b == nil {
		return nil
	}
	return f.VisitBlock(b).(*ir.Block)
}

func (f *folder) exprs(in []ir.Expression) []ir.Expression {
	if in == nil {
		return nil
	}
	out := make([]ir.Expression, len(in))
	for i, e := range in {
		out[i] = f.expr(e)
	}
	return out
}

func (f *folder) stmts(in []ir.Statement) []ir.Statement {
	if in == nil {
		return nil
	}
	out := make([]ir.Statement, len(in))
	for i, s := range in {
		out[i] = f.stmt(s)
	}
	return out
}

// Structure

func (f *folder) VisitProgram(p *ir.Program) ir.Node {
	out := &ir.Program{Namespace: p.Namespace}
	if p.Classes != nil {
		out.Classes = make([]*ir.Class, len(p.Classes))
	}
	for i, c := range p.Classes {
		if c != nil {
			out.Classes[i] = f.VisitClass(c).(*ir.Class)
		}
	}
	return out
}

func (f *folder) VisitClass(c *ir.Class) ir.Node {
	out := &ir.Class{Name: c.Name}
	if c.Methods != nil {
		out.Methods = make([]*ir.Method, len(c.Methods))
	}
	for i, m := range c.Methods {
		if m != nil {
			out.Methods[i] = f.VisitMethod(m).(*ir.Method)
		}
	}
	return out
}

func (f *folder) VisitMethod(m *ir.Method) ir.Node {
	out := &ir.Method{Name: m.Name, ReturnType: m.ReturnType, Body: f.block(m.Body)}
	if m.Parameters != nil {
		out.Parameters = make([]*ir.Parameter, len(m.Parameters))
	}
	for i, p := range m.Parameters {
		if p != nil {
			out.Parameters[i] = f.VisitParameter(p).(*ir.Parameter)
		}
	}
	return out
}

func (f *folder) VisitParameter(p *ir.Parameter) ir.Node {
	return &ir.Parameter{Name: p.Name, Type: p.Type}
}

// Statements

func (f *folder) VisitBlock(b *ir.Block) ir.Node {
	return &ir.Block{Statements: f.stmts(b.Statements)}
}

func (f *folder) VisitVariableDeclaration(s *ir.VariableDeclaration) ir.Node {
	return &ir.VariableDeclaration{Name: s.Name, Type: s.Type, InitialValue: f.expr(s.InitialValue)}
}

func (f *folder) VisitAssignment(s *ir.Assignment) ir.Node {
	return &ir.Assignment{Target: s.Target, Value: f.expr(s.Value)}
}

func (f *folder) VisitReturnStatement(s *ir.ReturnStatement) ir.Node {
	return &ir.ReturnStatement{Value: f.expr(s.Value)}
}

func (f *folder) VisitExpressionStatement(s *ir.ExpressionStatement) ir.Node {
	return &ir.ExpressionStatement{Expression: f.expr(s.Expression)}
}

func (f *folder) VisitIfStatement(s *ir.IfStatement) ir.Node {
	return &ir.IfStatement{
		Condition:  f.expr(s.Condition),
		ThenBranch: f.stmt(s.ThenBranch),
		ElseBranch: f.stmt(s.ElseBranch),
	}
}

func (f *folder) VisitWhileLoop(s *ir.WhileLoop) ir.Node {
	return &ir.WhileLoop{Condition: f.expr(s.Condition), Body: f.stmt(s.Body)}
}

func (f *folder) VisitForLoop(s *ir.ForLoop) ir.Node {
	return &ir.ForLoop{
		Initializers: f.stmts(s.Initializers),
		Condition:    f.expr(s.Condition),
		Incrementors: f.exprs(s.Incrementors),
		Body:         f.stmt(s.Body),
	}
}

// Expressions

func (f *folder) VisitLiteral(e *ir.Literal) ir.Node {
	return &ir.Literal{Value: e.Value, Type: e.Type}
}

func (f *folder) VisitVariable(e *ir.Variable) ir.Node {
	return &ir.Variable{Name: e.Name, Type: e.Type}
}

func (f *folder) VisitBinaryOperation(e *ir.BinaryOperation) ir.Node {
	left := f.expr(e.Left)
	right := f.expr(e.Right)

	l, lok := left.(*ir.Literal)
	r, rok := right.(*ir.Literal)
	if lok && rok {
		lit, res := foldBinary(e.Op, l, r, e.Type)
		f.record(res, &f.stats.BinaryFolded)
		if lit != nil {
			return lit
		}
	}

	return &ir.BinaryOperation{Left: left, Right: right, Op: e.Op, Type: e.Type}
}

func (f *folder) VisitUnaryOperation(e *ir.UnaryOperation) ir.Node {
	operand := f.expr(e.Operand)

	if lit, ok := operand.(*ir.Literal); ok {
		folded, res := foldUnary(e.Op, lit)
		f.record(res, &f.stats.UnaryFolded)
		if folded != nil {
			return folded
		}
	}

	return &ir.UnaryOperation{Operand: operand, Op: e.Op, Type: e.Type, Prefix: e.Prefix}
}

func (f *folder) VisitMethodCall(e *ir.MethodCall) ir.Node {
	return &ir.MethodCall{
		Target:    f.expr(e.Target),
		Name:      e.Name,
		Arguments: f.exprs(e.Arguments),
		Type:      e.Type,
	}
}

func (f *folder) record(res result, counter *int) {
	switch res {
	case resultFolded:
		*counter++
	case resultDivByZero:
		f.stats.DivisionByZeroSkipped++
	case resultSideEffect:
		// increments and decrements are never candidates
	default:
		f.stats.Unfoldable++
	}
}
