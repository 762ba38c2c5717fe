package ir

// MaxDepth bounds statement and expression nesting. Passes are recursive tree
// walks, so deeper input is rejected by validation instead of exhausting the stack.
const MaxDepth = 256

// Node is any IR node that can accept a Visitor. Sealed.
type Node interface {
	irNode()
}

// Statement is a node that performs an action. Sealed: only the statement
// variants in this package implement it.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value of a static type. Sealed.
type Expression interface {
	Node
	expressionNode()
	// TypeTag returns the static type name assigned by the producer ("int", "bool", ...).
	TypeTag() string
}

// Program is the root of the tree.
type Program struct {
	Namespace string   `json:"namespace,omitempty"` // empty means none
	Classes   []*Class `json:"classes"`
}

// Class is a named, ordered collection of methods. Classes do not nest.
type Class struct {
	Name    string    `json:"name"`
	Methods []*Method `json:"methods"`
}

// Method is a named function with a declared return type and a single body.
type Method struct {
	Name       string       `json:"name"`
	ReturnType string       `json:"return_type"`
	Parameters []*Parameter `json:"parameters"`
	Body       *Block       `json:"body"`
}

// Parameter is a purely descriptive name/type pair.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Block is any brace-delimited region. Statement order is execution order.
type Block struct {
	Statements []Statement
}

// VariableDeclaration declares a local, optionally initialized.
type VariableDeclaration struct {
	Name         string
	Type         string
	InitialValue Expression // optional
}

// Assignment stores Value into the named variable.
type Assignment struct {
	Target string
	Value  Expression
}

// ExpressionStatement evaluates an expression for effect (a call, an increment).
type ExpressionStatement struct {
	Expression Expression
}

// ReturnStatement leaves the method, optionally with a value.
type ReturnStatement struct {
	Value Expression // optional
}

// IfStatement is a conditional. An else-if chain is an IfStatement in ElseBranch.
type IfStatement struct {
	Condition  Expression
	ThenBranch Statement
	ElseBranch Statement // optional
}

// WhileLoop repeats Body while Condition holds.
type WhileLoop struct {
	Condition Expression
	Body      Statement
}

// ForLoop is a C-family for loop.
type ForLoop struct {
	Initializers []Statement
	Condition    Expression // optional
	Incrementors []Expression
	Body         Statement
}

// Literal is a constant. Value is kept as source text.
type Literal struct {
	Value string
	Type  string
}

// Variable is an unresolved name reference.
type Variable struct {
	Name string
	Type string
}

// BinaryOperation applies Op to Left and Right.
type BinaryOperation struct {
	Left  Expression
	Right Expression
	Op    OpKind
	Type  string
}

// UnaryOperation applies Op to Operand. Prefix distinguishes ++x from x++.
type UnaryOperation struct {
	Operand Expression
	Op      OpKind
	Type    string
	Prefix  bool
}

// MethodCall invokes Name with Arguments. A nil Target is a same-scope or static call.
type MethodCall struct {
	Target    Expression // optional
	Name      string
	Arguments []Expression
	Type      string
}

func (*Program) irNode()             {}
func (*Class) irNode()               {}
func (*Method) irNode()              {}
func (*Parameter) irNode()           {}
func (*Block) irNode()               {}
func (*VariableDeclaration) irNode() {}
func (*Assignment) irNode()          {}
func (*ExpressionStatement) irNode() {}
func (*ReturnStatement) irNode()     {}
func (*IfStatement) irNode()         {}
func (*WhileLoop) irNode()           {}
func (*ForLoop) irNode()             {}
func (*Literal) irNode()             {}
func (*Variable) irNode()            {}
func (*BinaryOperation) irNode()     {}
func (*UnaryOperation) irNode()      {}
func (*MethodCall) irNode()          {}

func (*Block) statementNode()               {}
func (*VariableDeclaration) statementNode() {}
func (*Assignment) statementNode()          {}
func (*ExpressionStatement) statementNode() {}
func (*ReturnStatement) statementNode()     {}
func (*IfStatement) statementNode()         {}
func (*WhileLoop) statementNode()           {}
func (*ForLoop) statementNode()             {}

func (*Literal) expressionNode()         {}
func (*Variable) expressionNode()        {}
func (*BinaryOperation) expressionNode() {}
func (*UnaryOperation) expressionNode()  {}
func (*MethodCall) expressionNode()      {}

func (e *Literal) TypeTag() string         { return e.Type }
func (e *Variable) TypeTag() string        { return e.Type }
func (e *BinaryOperation) TypeTag() string { return e.Type }
func (e *UnaryOperation) TypeTag() string  { return e.Type }
func (e *MethodCall) TypeTag() string      { return e.Type }

// KindOf returns the serialized kind name of a node ("binary", "if", "method", ...).
// Used in diagnostics; returns "nil" for a nil node.
func KindOf(n Node) string {
	switch n.(type) {
	case *Program:
		return "program"
	case *Class:
		return "class"
	case *Method:
		return "method"
	case *Parameter:
		return "parameter"
	case *Block:
		return KindBlock
	case *VariableDeclaration:
		return KindVar
	case *Assignment:
		return KindAssign
	case *ExpressionStatement:
		return KindExpr
	case *ReturnStatement:
		return KindReturn
	case *IfStatement:
		return KindIf
	case *WhileLoop:
		return KindWhile
	case *ForLoop:
		return KindFor
	case *Literal:
		return KindLiteral
	case *Variable:
		return KindVariable
	case *BinaryOperation:
		return KindBinary
	case *UnaryOperation:
		return KindUnary
	case *MethodCall:
		return KindCall
	default:
		return "nil"
	}
}

// IsNil reports whether n is nil or holds a nil pointer of some variant.
// A typed nil passes a plain n != nil check but cannot be dispatched.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Program:
		return n == nil
	case *Class:
		return n == nil
	case *Method:
		return n == nil
	case *Parameter:
		return n == nil
	case *Block:
		return n == nil
	case *VariableDeclaration:
		return n == nil
	case *Assignment:
		return n == nil
	case *ExpressionStatement:
		return n == nil
	case *ReturnStatement:
		return n == nil
	case *IfStatement:
		return n == nil
	case *WhileLoop:
		return n == nil
	case *ForLoop:
		return n == nil
	case *Literal:
		return n == nil
	case *Variable:
		return n == nil
	case *BinaryOperation:
		return n == nil
	case *UnaryOperation:
		return n == nil
	case *MethodCall:
		return n == nil
	default:
		return false
	}
}

// Serialized kind discriminators for statements and expressions.
const (
	KindBlock    = "block"
	KindVar      = "var"
	KindAssign   = "assign"
	KindExpr     = "expr"
	KindReturn   = "return"
	KindIf       = "if"
	KindWhile    = "while"
	KindFor      = "for"
	KindLiteral  = "literal"
	KindVariable = "variable"
	KindBinary   = "binary"
	KindUnary    = "unary"
	KindCall     = "call"
)
