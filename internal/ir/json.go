package ir

import "encoding/json"

// JSON encoding of the IR. Statements and expressions carry a "kind"
// discriminator; the shape matches the input documents accepted by the
// compiler package, so encoded programs can be loaded again.
//
// Nil slices encode as [] so documents never contain null lists.

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	type program Program
	c := program(*p)
	if c.Classes == nil {
		c.Classes = []*Class{}
	}
	return json.Marshal(c)
}

// MarshalJSON implements json.Marshaler for Class.
func (c *Class) MarshalJSON() ([]byte, error) {
	type class Class
	cc := class(*c)
	if cc.Methods == nil {
		cc.Methods = []*Method{}
	}
	return json.Marshal(cc)
}

// MarshalJSON implements json.Marshaler for Method.
func (m *Method) MarshalJSON() ([]byte, error) {
	type method Method
	c := method(*m)
	if c.Parameters == nil {
		c.Parameters = []*Parameter{}
	}
	return json.Marshal(c)
}

// MarshalJSON implements json.Marshaler for Block.
func (b *Block) MarshalJSON() ([]byte, error) {
	stmts := b.Statements
	if stmts == nil {
		stmts = []Statement{}
	}
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Statements []Statement `json:"statements"`
	}{KindBlock, stmts})
}

// MarshalJSON implements json.Marshaler for VariableDeclaration.
func (s *VariableDeclaration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind         string     `json:"kind"`
		Name         string     `json:"name"`
		Type         string     `json:"type"`
		InitialValue Expression `json:"initial_value,omitempty"`
	}{KindVar, s.Name, s.Type, s.InitialValue})
}

// MarshalJSON implements json.Marshaler for Assignment.
func (s *Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string     `json:"kind"`
		Target string     `json:"target"`
		Value  Expression `json:"value"`
	}{KindAssign, s.Target, s.Value})
}

// MarshalJSON implements json.Marshaler for ExpressionStatement.
func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string     `json:"kind"`
		Expression Expression `json:"expression"`
	}{KindExpr, s.Expression})
}

// MarshalJSON implements json.Marshaler for ReturnStatement.
func (s *ReturnStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Value Expression `json:"value,omitempty"`
	}{KindReturn, s.Value})
}

// MarshalJSON implements json.Marshaler for IfStatement.
func (s *IfStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string     `json:"kind"`
		Condition  Expression `json:"condition"`
		ThenBranch Statement  `json:"then_branch"`
		ElseBranch Statement  `json:"else_branch,omitempty"`
	}{KindIf, s.Condition, s.ThenBranch, s.ElseBranch})
}

// MarshalJSON implements json.Marshaler for WhileLoop.
func (s *WhileLoop) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string     `json:"kind"`
		Condition Expression `json:"condition"`
		Body      Statement  `json:"body"`
	}{KindWhile, s.Condition, s.Body})
}

// MarshalJSON implements json.Marshaler for ForLoop.
func (s *ForLoop) MarshalJSON() ([]byte, error) {
	init := s.Initializers
	if init == nil {
		init = []Statement{}
	}
	post := s.Incrementors
	if post == nil {
		post = []Expression{}
	}
	return json.Marshal(struct {
		Kind         string       `json:"kind"`
		Initializers []Statement  `json:"initializers"`
		Condition    Expression   `json:"condition,omitempty"`
		Incrementors []Expression `json:"incrementors"`
		Body         Statement    `json:"body"`
	}{KindFor, init, s.Condition, post, s.Body})
}

// MarshalJSON implements json.Marshaler for Literal.
func (e *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
		Type  string `json:"type"`
	}{KindLiteral, e.Value, e.Type})
}

// MarshalJSON implements json.Marshaler for Variable.
func (e *Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Type string `json:"type"`
	}{KindVariable, e.Name, e.Type})
}

// MarshalJSON implements json.Marshaler for BinaryOperation.
func (e *BinaryOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Op    OpKind     `json:"op"`
		Left  Expression `json:"left"`
		Right Expression `json:"right"`
		Type  string     `json:"type"`
	}{KindBinary, e.Op, e.Left, e.Right, e.Type})
}

// MarshalJSON implements json.Marshaler for UnaryOperation.
func (e *UnaryOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string     `json:"kind"`
		Op      OpKind     `json:"op"`
		Operand Expression `json:"operand"`
		Prefix  bool       `json:"prefix"`
		Type    string     `json:"type"`
	}{KindUnary, e.Op, e.Operand, e.Prefix, e.Type})
}

// MarshalJSON implements json.Marshaler for MethodCall.
func (e *MethodCall) MarshalJSON() ([]byte, error) {
	args := e.Arguments
	if args == nil {
		args = []Expression{}
	}
	return json.Marshal(struct {
		Kind      string       `json:"kind"`
		Target    Expression   `json:"target,omitempty"`
		Method    string       `json:"method"`
		Arguments []Expression `json:"arguments"`
		Type      string       `json:"type"`
	}{KindCall, e.Target, e.Name, args, e.Type})
}
