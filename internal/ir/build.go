package ir

// Constructors for ergonomic tree building. They allocate fresh nodes and
// never share slices with the caller.

// NewProgram creates a Program.
func NewProgram(namespace string, classes ...*Class) *Program {
	return &Program{Namespace: namespace, Classes: classes}
}

// NewClass creates a Class.
func NewClass(name string, methods ...*Method) *Class {
	return &Class{Name: name, Methods: methods}
}

// NewMethod creates a Method. A nil body becomes an empty Block.
func NewMethod(name, returnType string, params []*Parameter, body *Block) *Method {
	if body == nil {
		body = NewBlock()
	}
	return &Method{Name: name, ReturnType: returnType, Parameters: params, Body: body}
}

// NewParameter creates a Parameter.
func NewParameter(name, typ string) *Parameter {
	return &Parameter{Name: name, Type: typ}
}

// NewBlock creates a Block holding stmts in order.
func NewBlock(stmts ...Statement) *Block {
	return &Block{Statements: stmts}
}

// NewVar creates a VariableDeclaration; init may be nil.
func NewVar(name, typ string, init Expression) *VariableDeclaration {
	return &VariableDeclaration{Name: name, Type: typ, InitialValue: init}
}

// NewAssign creates an Assignment.
func NewAssign(target string, value Expression) *Assignment {
	return &Assignment{Target: target, Value: value}
}

// NewExprStmt creates an ExpressionStatement.
func NewExprStmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: e}
}

// NewReturn creates a ReturnStatement; value may be nil.
func NewReturn(value Expression) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

// NewIf creates an IfStatement; elseBranch may be nil.
func NewIf(cond Expression, then, elseBranch Statement) *IfStatement {
	return &IfStatement{Condition: cond, ThenBranch: then, ElseBranch: elseBranch}
}

// NewWhile creates a WhileLoop.
func NewWhile(cond Expression, body Statement) *WhileLoop {
	return &WhileLoop{Condition: cond, Body: body}
}

// NewFor creates a ForLoop; cond may be nil.
func NewFor(init []Statement, cond Expression, post []Expression, body Statement) *ForLoop {
	return &ForLoop{Initializers: init, Condition: cond, Incrementors: post, Body: body}
}

// NewLiteral creates a Literal.
func NewLiteral(value, typ string) *Literal {
	return &Literal{Value: value, Type: typ}
}

// Int is shorthand for an "int" literal.
func Int(value string) *Literal {
	return NewLiteral(value, "int")
}

// NewVariable creates a Variable reference.
func NewVariable(name, typ string) *Variable {
	return &Variable{Name: name, Type: typ}
}

// NewBinary creates a BinaryOperation.
func NewBinary(left, right Expression, op OpKind, typ string) *BinaryOperation {
	return &BinaryOperation{Left: left, Right: right, Op: op, Type: typ}
}

// NewUnary creates a UnaryOperation.
func NewUnary(operand Expression, op OpKind, typ string, prefix bool) *UnaryOperation {
	return &UnaryOperation{Operand: operand, Op: op, Type: typ, Prefix: prefix}
}

// NewCall creates a MethodCall; target may be nil.
func NewCall(target Expression, name string, args []Expression, typ string) *MethodCall {
	return &MethodCall{Target: target, Name: name, Arguments: args, Type: typ}
}
