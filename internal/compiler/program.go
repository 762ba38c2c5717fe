package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/sharpj/internal/ir"
)

// CompileProgram decodes a CUE value holding an IR program document into an
// ir.Program. Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value is first unified with the embedded #Program schema, so shape
// errors carry source positions. JSON and YAML documents are valid CUE and
// can be compiled the same way:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileBytes(data, cue.Filename("calc.json"))
//	prog, err := CompileProgram(v)
//
// Statements and expressions are discriminated by their "kind" field; see
// ir.KindOf for the names.
func CompileProgram(v cue.Value) (*ir.Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if !v.Exists() {
		return nil, &CompileError{Field: "program", Message: "program document is required", Pos: v.Pos()}
	}

	schema, err := programSchema(v.Context())
	if err != nil {
		return nil, formatCUEError(err)
	}
	u := schema.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	// The schema adds no defaults, so decoding reads the input itself and
	// reports missing fields against the document's own positions.
	d := decoder{}
	prog := &ir.Program{}

	if prog.Namespace, err = d.optString(v, "namespace", ""); err != nil {
		return nil, err
	}

	err = d.each(v, "classes", "classes", func(item cue.Value, path string) error {
		c, err := d.class(item, path)
		if err != nil {
			return err
		}
		prog.Classes = append(prog.Classes, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return prog, nil
}

// decoder converts document values into IR nodes. depth tracks statement and
// expression nesting so hostile input cannot exhaust the stack.
type decoder struct {
	depth int
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func (d decoder) str(v cue.Value, field, path string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", &CompileError{Field: join(path, field), Message: "is required", Pos: v.Pos()}
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func (d decoder) optString(v cue.Value, field, path string) (string, error) {
	if !v.LookupPath(cue.ParsePath(field)).Exists() {
		return "", nil
	}
	return d.str(v, field, path)
}

// each calls fn for every element of the optional list field.
func (d decoder) each(v cue.Value, field, path string, fn func(item cue.Value, path string) error) error {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return nil
	}
	iter, err := f.List()
	if err != nil {
		return formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		if err := fn(iter.Value(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (d decoder) class(v cue.Value, path string) (*ir.Class, error) {
	name, err := d.str(v, "name", path)
	if err != nil {
		return nil, err
	}
	c := &ir.Class{Name: name}
	err = d.each(v, "methods", join(path, "methods"), func(item cue.Value, p string) error {
		m, err := d.method(item, p)
		if err != nil {
			return err
		}
		c.Methods = append(c.Methods, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (d decoder) method(v cue.Value, path string) (*ir.Method, error) {
	m := &ir.Method{}
	var err error
	if m.Name, err = d.str(v, "name", path); err != nil {
		return nil, err
	}
	if m.ReturnType, err = d.str(v, "return_type", path); err != nil {
		return nil, err
	}

	err = d.each(v, "parameters", join(path, "parameters"), func(item cue.Value, p string) error {
		name, err := d.str(item, "name", p)
		if err != nil {
			return err
		}
		typ, err := d.str(item, "type", p)
		if err != nil {
			return err
		}
		m.Parameters = append(m.Parameters, ir.NewParameter(name, typ))
		return nil
	})
	if err != nil {
		return nil, err
	}

	body := v.LookupPath(cue.ParsePath("body"))
	if !body.Exists() {
		return nil, &CompileError{Field: join(path, "body"), Message: "is required", Pos: v.Pos()}
	}
	if m.Body, err = d.block(body, join(path, "body")); err != nil {
		return nil, err
	}
	return m, nil
}

func (d decoder) block(v cue.Value, path string) (*ir.Block, error) {
	b := &ir.Block{}
	err := d.each(v, "statements", join(path, "statements"), func(item cue.Value, p string) error {
		s, err := d.stmt(item, p)
		if err != nil {
			return err
		}
		b.Statements = append(b.Statements, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (d decoder) nested(v cue.Value, path string) (decoder, error) {
	if d.depth >= ir.MaxDepth {
		return d, &CompileError{
			Field:   path,
			Message: fmt.Sprintf("nesting exceeds %d levels", ir.MaxDepth),
			Pos:     v.Pos(),
		}
	}
	return decoder{depth: d.depth + 1}, nil
}

// child decodes a required statement field.
func (d decoder) childStmt(v cue.Value, field, path string) (ir.Statement, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return nil, &CompileError{Field: join(path, field), Message: "is required", Pos: v.Pos()}
	}
	return d.stmt(f, join(path, field))
}

func (d decoder) optStmt(v cue.Value, field, path string) (ir.Statement, error) {
	if !v.LookupPath(cue.ParsePath(field)).Exists() {
		return nil, nil
	}
	return d.childStmt(v, field, path)
}

func (d decoder) childExpr(v cue.Value, field, path string) (ir.Expression, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return nil, &CompileError{Field: join(path, field), Message: "is required", Pos: v.Pos()}
	}
	return d.expr(f, join(path, field))
}

func (d decoder) optExpr(v cue.Value, field, path string) (ir.Expression, error) {
	if !v.LookupPath(cue.ParsePath(field)).Exists() {
		return nil, nil
	}
	return d.childExpr(v, field, path)
}

func (d decoder) exprs(v cue.Value, field, path string) ([]ir.Expression, error) {
	var out []ir.Expression
	err := d.each(v, field, join(path, field), func(item cue.Value, p string) error {
		e, err := d.expr(item, p)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func (d decoder) stmt(v cue.Value, path string) (ir.Statement, error) {
	d, err := d.nested(v, path)
	if err != nil {
		return nil, err
	}
	kind, err := d.str(v, "kind", path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ir.KindBlock:
		return d.block(v, path)

	case ir.KindVar:
		s := &ir.VariableDeclaration{}
		if s.Name, err = d.str(v, "name", path); err != nil {
			return nil, err
		}
		if s.Type, err = d.str(v, "type", path); err != nil {
			return nil, err
		}
		if s.InitialValue, err = d.optExpr(v, "initial_value", path); err != nil {
			return nil, err
		}
		return s, nil

	case ir.KindAssign:
		s := &ir.Assignment{}
		if s.Target, err = d.str(v, "target", path); err != nil {
			return nil, err
		}
		if s.Value, err = d.childExpr(v, "value", path); err != nil {
			return nil, err
		}
		return s, nil

	case ir.KindExpr:
		e, err := d.childExpr(v, "expression", path)
		if err != nil {
			return nil, err
		}
		return ir.NewExprStmt(e), nil

	case ir.KindReturn:
		e, err := d.optExpr(v, "value", path)
		if err != nil {
			return nil, err
		}
		return ir.NewReturn(e), nil

	case ir.KindIf:
		s := &ir.IfStatement{}
		if s.Condition, err = d.childExpr(v, "condition", path); err != nil {
			return nil, err
		}
		if s.ThenBranch, err = d.childStmt(v, "then_branch", path); err != nil {
			return nil, err
		}
		if s.ElseBranch, err = d.optStmt(v, "else_branch", path); err != nil {
			return nil, err
		}
		return s, nil

	case ir.KindWhile:
		s := &ir.WhileLoop{}
		if s.Condition, err = d.childExpr(v, "condition", path); err != nil {
			return nil, err
		}
		if s.Body, err = d.childStmt(v, "body", path); err != nil {
			return nil, err
		}
		return s, nil

	case ir.KindFor:
		s := &ir.ForLoop{}
		err = d.each(v, "initializers", join(path, "initializers"), func(item cue.Value, p string) error {
			init, err := d.stmt(item, p)
			if err != nil {
				return err
			}
			s.Initializers = append(s.Initializers, init)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if s.Condition, err = d.optExpr(v, "condition", path); err != nil {
			return nil, err
		}
		if s.Incrementors, err = d.exprs(v, "incrementors", path); err != nil {
			return nil, err
		}
		if s.Body, err = d.childStmt(v, "body", path); err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, &CompileError{
			Field:   join(path, "kind"),
			Message: fmt.Sprintf("unknown statement kind %q", kind),
			Pos:     v.Pos(),
		}
	}
}

func (d decoder) expr(v cue.Value, path string) (ir.Expression, error) {
	d, err := d.nested(v, path)
	if err != nil {
		return nil, err
	}
	kind, err := d.str(v, "kind", path)
	if err != nil {
		return nil, err
	}
	typ, err := d.str(v, "type", path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ir.KindLiteral:
		value, err := d.literalText(v, path)
		if err != nil {
			return nil, err
		}
		return ir.NewLiteral(value, typ), nil

	case ir.KindVariable:
		name, err := d.str(v, "name", path)
		if err != nil {
			return nil, err
		}
		return ir.NewVariable(name, typ), nil

	case ir.KindBinary:
		op, err := d.op(v, path)
		if err != nil {
			return nil, err
		}
		left, err := d.childExpr(v, "left", path)
		if err != nil {
			return nil, err
		}
		right, err := d.childExpr(v, "right", path)
		if err != nil {
			return nil, err
		}
		return ir.NewBinary(left, right, op, typ), nil

	case ir.KindUnary:
		op, err := d.op(v, path)
		if err != nil {
			return nil, err
		}
		operand, err := d.childExpr(v, "operand", path)
		if err != nil {
			return nil, err
		}
		prefix := true
		if f := v.LookupPath(cue.ParsePath("prefix")); f.Exists() {
			if prefix, err = f.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		return ir.NewUnary(operand, op, typ, prefix), nil

	case ir.KindCall:
		target, err := d.optExpr(v, "target", path)
		if err != nil {
			return nil, err
		}
		name, err := d.str(v, "method", path)
		if err != nil {
			return nil, err
		}
		args, err := d.exprs(v, "arguments", path)
		if err != nil {
			return nil, err
		}
		return ir.NewCall(target, name, args, typ), nil

	default:
		return nil, &CompileError{
			Field:   join(path, "kind"),
			Message: fmt.Sprintf("unknown expression kind %q", kind),
			Pos:     v.Pos(),
		}
	}
}

// literalText returns the literal's text. Documents may spell numbers and
// booleans natively; they keep their source spelling.
func (d decoder) literalText(v cue.Value, path string) (string, error) {
	f := v.LookupPath(cue.ParsePath("value"))
	if !f.Exists() {
		return "", &CompileError{Field: join(path, "value"), Message: "is required", Pos: v.Pos()}
	}
	switch f.Kind() {
	case cue.StringKind:
		s, err := f.String()
		if err != nil {
			return "", formatCUEError(err)
		}
		return s, nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind, cue.BoolKind:
		data, err := f.MarshalJSON()
		if err != nil {
			return "", formatCUEError(err)
		}
		return string(data), nil
	default:
		return "", &CompileError{
			Field:   join(path, "value"),
			Message: fmt.Sprintf("literal value must be a string, number or bool, got %v", f.Kind()),
			Pos:     f.Pos(),
		}
	}
}

func (d decoder) op(v cue.Value, path string) (ir.OpKind, error) {
	name, err := d.str(v, "op", path)
	if err != nil {
		return 0, err
	}
	op, err := ir.ParseOpKind(name)
	if err != nil {
		return 0, &CompileError{Field: join(path, "op"), Message: err.Error(), Pos: v.LookupPath(cue.ParsePath("op")).Pos()}
	}
	return op, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Report the first error, with its position when known
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	compileErr := &CompileError{Field: "cue", Message: firstErr.Error()}
	if len(positions) > 0 {
		compileErr.Pos = positions[0]
	}
	return compileErr
}
