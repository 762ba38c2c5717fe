package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/sharpj/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrNilProgram       = "E100" // no program to validate
	ErrInvalidName      = "E101" // empty or malformed identifier
	ErrMissingNode      = "E102" // required child node is nil
	ErrMissingType      = "E103" // empty type tag
	ErrInvalidOperation = "E104" // unknown operation kind or wrong arity
	ErrNestingTooDeep   = "E105" // nesting exceeds ir.MaxDepth
	ErrCycle            = "E106" // node is its own ancestor
)

// ValidationError represents a structural validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

var (
	identPattern     = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*$`)
	qualifiedPattern = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*$`)
)

// Validate checks p against the tree invariants every pass relies on.
// Returns all errors found (does not fail-fast), in traversal order.
//
// Field paths use the document field names, e.g.
// "classes[0].methods[1].body.statements[2].condition".
func Validate(p *ir.Program) []ValidationError {
	if p == nil {
		return []ValidationError{{Field: "program", Message: "program is nil", Code: ErrNilProgram}}
	}
	var errs []ValidationError
	v := validator{errs: &errs, ancestors: make(map[ir.Node]bool)}
	ir.Accept[struct{}](p, v)
	return errs
}

// validator is a visitor that records errors into a shared slice. Each copy
// carries the path and nesting depth of the node it visits.
type validator struct {
	path      string
	depth     int
	errs      *[]ValidationError
	ancestors map[ir.Node]bool
}

var _ ir.Visitor[struct{}] = validator{}

// add records an error at field below the current path; an empty field
// means the current node itself.
func (v validator) add(field, code, format string, args ...any) {
	path := v.path
	if field != "" {
		path = join(v.path, field)
	}
	*v.errs = append(*v.errs, ValidationError{
		Field:   path,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

func (v validator) at(segment string) validator {
	c := v
	c.path = join(v.path, segment)
	return c
}

func (v validator) index(segment string, i int) validator {
	return v.at(fmt.Sprintf("%s[%d]", segment, i))
}

func (v validator) name(field, value string, pattern *regexp.Regexp) {
	switch {
	case strings.TrimSpace(value) == "":
		v.add(field, ErrInvalidName, "name is required")
	case !pattern.MatchString(value):
		v.add(field, ErrInvalidName, "invalid name %q", value)
	}
}

func (v validator) typeTag(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, ErrMissingType, "type tag is required")
	}
}

// visit dispatches a required child, guarding against nil (typed or not),
// cycles and excessive nesting.
func (v validator) visit(n ir.Node, missing string) {
	if ir.IsNil(n) {
		v.add("", ErrMissingNode, "%s is required", missing)
		return
	}
	if v.depth >= ir.MaxDepth {
		v.add("", ErrNestingTooDeep, "nesting exceeds %d levels", ir.MaxDepth)
		return
	}
	if v.ancestors[n] {
		v.add("", ErrCycle, "%s node contains itself", ir.KindOf(n))
		return
	}
	v.ancestors[n] = true
	defer delete(v.ancestors, n)

	c := v
	c.depth++
	ir.Accept[struct{}](n, c)
}

func (v validator) stmt(field string, s ir.Statement) {
	v.at(field).visit(s, "statement")
}

func (v validator) expr(field string, e ir.Expression) {
	v.at(field).visit(e, "expression")
}

func (v validator) optExpr(field string, e ir.Expression) {
	if e != nil {
		v.expr(field, e)
	}
}

// Structure

func (v validator) VisitProgram(p *ir.Program) struct{} {
	if p.Namespace != "" {
		v.name("namespace", p.Namespace, qualifiedPattern)
	}
	for i, c := range p.Classes {
		next := v.index("classes", i)
		if c == nil {
			next.add("", ErrMissingNode, "class is required")
			continue
		}
		next.VisitClass(c)
	}
	return struct{}{}
}

func (v validator) VisitClass(c *ir.Class) struct{} {
	v.name("name", c.Name, identPattern)
	for i, m := range c.Methods {
		next := v.index("methods", i)
		if m == nil {
			next.add("", ErrMissingNode, "method is required")
			continue
		}
		next.VisitMethod(m)
	}
	return struct{}{}
}

func (v validator) VisitMethod(m *ir.Method) struct{} {
	v.name("name", m.Name, identPattern)
	v.typeTag("return_type", m.ReturnType)
	for i, p := range m.Parameters {
		next := v.index("parameters", i)
		if p == nil {
			next.add("", ErrMissingNode, "parameter is required")
			continue
		}
		next.VisitParameter(p)
	}
	if m.Body == nil {
		v.add("body", ErrMissingNode, "body is required")
		return struct{}{}
	}
	v.at("body").VisitBlock(m.Body)
	return struct{}{}
}

func (v validator) VisitParameter(p *ir.Parameter) struct{} {
	v.name("name", p.Name, identPattern)
	v.typeTag("type", p.Type)
	return struct{}{}
}

// Statements

func (v validator) VisitBlock(b *ir.Block) struct{} {
	for i, s := range b.Statements {
		v.stmt(fmt.Sprintf("statements[%d]", i), s)
	}
	return struct{}{}
}

func (v validator) VisitVariableDeclaration(s *ir.VariableDeclaration) struct{} {
	v.name("name", s.Name, identPattern)
	v.typeTag("type", s.Type)
	v.optExpr("initial_value", s.InitialValue)
	return struct{}{}
}

func (v validator) VisitAssignment(s *ir.Assignment) struct{} {
	v.name("target", s.Target, qualifiedPattern)
	v.expr("value", s.Value)
	return struct{}{}
}

func (v validator) VisitReturnStatement(s *ir.ReturnStatement) struct{} {
	v.optExpr("value", s.Value)
	return struct{}{}
}

func (v validator) VisitExpressionStatement(s *ir.ExpressionStatement) struct{} {
	v.expr("expression", s.Expression)
	return struct{}{}
}

func (v validator) VisitIfStatement(s *ir.IfStatement) struct{} {
	v.expr("condition", s.Condition)
	v.stmt("then_branch", s.ThenBranch)
	if s.ElseBranch != nil {
		v.stmt("else_branch", s.ElseBranch)
	}
	return struct{}{}
}

func (v validator) VisitWhileLoop(s *ir.WhileLoop) struct{} {
	v.expr("condition", s.Condition)
	v.stmt("body", s.Body)
	return struct{}{}
}

func (v validator) VisitForLoop(s *ir.ForLoop) struct{} {
	for i, init := range s.Initializers {
		v.stmt(fmt.Sprintf("initializers[%d]", i), init)
	}
	v.optExpr("condition", s.Condition)
	for i, inc := range s.Incrementors {
		v.expr(fmt.Sprintf("incrementors[%d]", i), inc)
	}
	v.stmt("body", s.Body)
	return struct{}{}
}

// Expressions

func (v validator) VisitLiteral(e *ir.Literal) struct{} {
	v.typeTag("type", e.Type)
	return struct{}{}
}

func (v validator) VisitVariable(e *ir.Variable) struct{} {
	v.name("name", e.Name, qualifiedPattern)
	v.typeTag("type", e.Type)
	return struct{}{}
}

func (v validator) VisitBinaryOperation(e *ir.BinaryOperation) struct{} {
	switch {
	case !e.Op.Valid():
		v.add("op", ErrInvalidOperation, "unknown operation %s", e.Op)
	case !e.Op.IsBinary():
		v.add("op", ErrInvalidOperation, "operation %s is not binary", e.Op)
	}
	v.typeTag("type", e.Type)
	v.expr("left", e.Left)
	v.expr("right", e.Right)
	return struct{}{}
}

func (v validator) VisitUnaryOperation(e *ir.UnaryOperation) struct{} {
	switch {
	case !e.Op.Valid():
		v.add("op", ErrInvalidOperation, "unknown operation %s", e.Op)
	case !e.Op.IsUnary():
		v.add("op", ErrInvalidOperation, "operation %s is not unary", e.Op)
	}
	v.typeTag("type", e.Type)
	v.expr("operand", e.Operand)
	return struct{}{}
}

func (v validator) VisitMethodCall(e *ir.MethodCall) struct{} {
	v.optExpr("target", e.Target)
	v.name("method", e.Name, identPattern)
	for i, arg := range e.Arguments {
		v.expr(fmt.Sprintf("arguments[%d]", i), arg)
	}
	v.typeTag("type", e.Type)
	return struct{}{}
}
