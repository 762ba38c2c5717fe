package compiler

import (
	"encoding/json"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sharpj/internal/ir"
	"github.com/roach88/sharpj/internal/testutil"
)

func compileString(t *testing.T, src string) (*ir.Program, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename("prog.cue"))
	require.NoError(t, v.Err())
	return CompileProgram(v)
}

func TestCompileProgramRoundTripsJSON(t *testing.T) {
	for name, prog := range map[string]*ir.Program{
		"calculator":   testutil.Calculator("Demo"),
		"control_flow": testutil.ControlFlow(),
		"folding":      testutil.Folding(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(prog)
			require.NoError(t, err)

			ctx := cuecontext.New()
			v := ctx.CompileBytes(data, cue.Filename(name+".json"))
			require.NoError(t, v.Err())

			got, err := CompileProgram(v)
			require.NoError(t, err)

			again, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(data), string(again))
		})
	}
}

func TestCompileProgramBasic(t *testing.T) {
	prog, err := compileString(t, `
		namespace: "Demo"
		classes: [{
			name: "Calculator"
			methods: [{
				name:        "Calculate"
				return_type: "int"
				parameters: [{name: "n", type: "int"}]
				body: statements: [
					{kind: "var", name: "a", type: "int", initial_value: {kind: "literal", value: 10, type: "int"}},
					{kind: "var", name: "d", type: "double", initial_value: {kind: "literal", value: 1.5, type: "double"}},
					{kind: "var", name: "ok", type: "bool", initial_value: {kind: "literal", value: true, type: "bool"}},
					{kind: "var", name: "s", type: "string"},
					{kind: "return", value: {
						kind: "binary", op: "add", type: "int"
						left:  {kind: "variable", name: "a", type: "int"}
						right: {kind: "variable", name: "n", type: "int"}
					}},
				]
			}]
		}]
	`)
	require.NoError(t, err)

	assert.Equal(t, "Demo", prog.Namespace)
	require.Len(t, prog.Classes, 1)
	m := prog.Classes[0].Methods[0]
	assert.Equal(t, "Calculate", m.Name)
	assert.Equal(t, "int", m.ReturnType)
	assert.Equal(t, []*ir.Parameter{ir.NewParameter("n", "int")}, m.Parameters)

	stmts := m.Body.Statements
	require.Len(t, stmts, 5)
	assert.Equal(t, ir.NewVar("a", "int", ir.Int("10")), stmts[0])
	assert.Equal(t, ir.NewVar("d", "double", ir.NewLiteral("1.5", "double")), stmts[1])
	assert.Equal(t, ir.NewVar("ok", "bool", ir.NewLiteral("true", "bool")), stmts[2])
	assert.Equal(t, ir.NewVar("s", "string", nil), stmts[3])
	assert.Equal(t, ir.NewReturn(ir.NewBinary(
		ir.NewVariable("a", "int"), ir.NewVariable("n", "int"), ir.OpAdd, "int",
	)), stmts[4])
}

func TestCompileProgramUnaryPrefixDefaultsTrue(t *testing.T) {
	prog, err := compileString(t, `
		classes: [{name: "C", methods: [{name: "m", return_type: "void", body: statements: [
			{kind: "expr", expression: {kind: "unary", op: "pre_increment", type: "int",
				operand: {kind: "variable", name: "x", type: "int"}}},
			{kind: "expr", expression: {kind: "unary", op: "post_increment", prefix: false, type: "int",
				operand: {kind: "variable", name: "x", type: "int"}}},
		]}]}]
	`)
	require.NoError(t, err)

	stmts := prog.Classes[0].Methods[0].Body.Statements
	assert.True(t, stmts[0].(*ir.ExpressionStatement).Expression.(*ir.UnaryOperation).Prefix)
	assert.False(t, stmts[1].(*ir.ExpressionStatement).Expression.(*ir.UnaryOperation).Prefix)
}

func TestCompileProgramEmptyDocument(t *testing.T) {
	prog, err := compileString(t, `{}`)
	require.NoError(t, err)
	assert.Empty(t, prog.Namespace)
	assert.Empty(t, prog.Classes)
}

func TestCompileProgramErrors(t *testing.T) {
	method := func(stmts string) string {
		return `classes: [{name: "C", methods: [{name: "m", return_type: "void", body: statements: [` + stmts + `]}]}]`
	}

	tests := []struct {
		name     string
		src      string
		field    string // expected CompileError.Field; empty means any
		contains string
	}{
		{
			name:     "unknown expression kind",
			src:      method(`{kind: "return", value: {kind: "lambda", type: "int"}}`),
			field:    "classes[0].methods[0].body.statements[0].value.kind",
			contains: `unknown expression kind "lambda"`,
		},
		{
			name:     "missing expression type",
			src:      method(`{kind: "return", value: {kind: "variable", name: "x"}}`),
			field:    "classes[0].methods[0].body.statements[0].value.type",
			contains: "is required",
		},
		{
			name:     "unknown operation",
			src:      method(`{kind: "return", value: {kind: "binary", op: "power", type: "int", left: {kind: "variable", name: "x", type: "int"}, right: {kind: "variable", name: "y", type: "int"}}}`),
			field:    "classes[0].methods[0].body.statements[0].value.op",
			contains: `unknown operation kind "power"`,
		},
		{
			name:     "missing assignment value",
			src:      method(`{kind: "assign", target: "x"}`),
			field:    "classes[0].methods[0].body.statements[0].value",
			contains: "is required",
		},
		{
			name:     "missing if then branch",
			src:      method(`{kind: "if", condition: {kind: "variable", name: "a", type: "bool"}}`),
			field:    "classes[0].methods[0].body.statements[0].then_branch",
			contains: "is required",
		},
		{
			name:     "for initializer missing name",
			src:      method(`{kind: "for", initializers: [{kind: "var", name: "i", type: "int"}, {kind: "var", type: "int"}], body: {kind: "block"}}`),
			field:    "classes[0].methods[0].body.statements[0].initializers[1].name",
			contains: "is required",
		},
		{
			name:     "literal with structured value",
			src:      method(`{kind: "return", value: {kind: "literal", value: {x: 1}, type: "int"}}`),
			field:    "classes[0].methods[0].body.statements[0].value.value",
			contains: "literal value must be a string, number or bool",
		},
		{
			name:     "unknown statement kind rejected by schema",
			src:      method(`{kind: "goto"}`),
			contains: "kind",
		},
		{
			name:     "missing class name rejected by schema",
			src:      `classes: [{methods: []}]`,
			contains: "name",
		},
		{
			name:     "unknown class field rejected by schema",
			src:      `classes: [{name: "C", extends: "Base"}]`,
			contains: "extends",
		},
		{
			name:     "missing method body",
			src:      `classes: [{name: "C", methods: [{name: "m", return_type: "void"}]}]`,
			contains: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileString(t, tt.src)
			require.Error(t, err)

			var compileErr *CompileError
			require.ErrorAs(t, err, &compileErr)
			if tt.field != "" {
				assert.Equal(t, tt.field, compileErr.Field)
			}
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCompileProgramErrorPosition(t *testing.T) {
	_, err := compileString(t, `
classes: [{name: "C", methods: [{name: "m", return_type: "void", body: statements: [
	{kind: "return", value: {kind: "lambda", type: "int"}},
]}]}]
`)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.True(t, compileErr.Pos.IsValid())
	assert.True(t, strings.HasPrefix(err.Error(), "prog.cue:3:"), err.Error())
}

func TestCompileProgramRejectsDeepNesting(t *testing.T) {
	depth := ir.MaxDepth + 10
	var b strings.Builder
	b.WriteString(`classes: [{name: "C", methods: [{name: "m", return_type: "int", body: statements: [{kind: "return", value: `)
	for i := 0; i < depth; i++ {
		b.WriteString(`{kind: "unary", op: "minus", type: "int", operand: `)
	}
	b.WriteString(`{kind: "literal", value: "1", type: "int"}`)
	b.WriteString(strings.Repeat("}", depth))
	b.WriteString(`}]}]}]`)

	_, err := compileString(t, b.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting exceeds 256 levels")
}

func TestCompileProgramValueError(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`classes: [`)
	_, err := CompileProgram(v)
	require.Error(t, err)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "classes[0].name", Message: "is required"}
	assert.Equal(t, "classes[0].name: is required", err.Error())
}
