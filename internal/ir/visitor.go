package ir

import "fmt"

// Visitor is implemented by every pass over the IR. T is the pass's result type:
// a folded node for the optimizer, text for the emitter, an error for checkers.
//
// Adding a pass means implementing Visitor; node code never changes.
type Visitor[T any] interface {
	VisitProgram(*Program) T
	VisitClass(*Class) T
	VisitMethod(*Method) T
	VisitParameter(*Parameter) T

	VisitBlock(*Block) T
	VisitVariableDeclaration(*VariableDeclaration) T
	VisitAssignment(*Assignment) T
	VisitReturnStatement(*ReturnStatement) T
	VisitExpressionStatement(*ExpressionStatement) T
	VisitIfStatement(*IfStatement) T
	VisitWhileLoop(*WhileLoop) T
	VisitForLoop(*ForLoop) T

	VisitLiteral(*Literal) T
	VisitVariable(*Variable) T
	VisitBinaryOperation(*BinaryOperation) T
	VisitUnaryOperation(*UnaryOperation) T
	VisitMethodCall(*MethodCall) T
}

// Accept dispatches n to the Visitor method for its concrete variant.
//
// Node is sealed, so the switch is exhaustive. A nil node is a contract
// violation: callers check optional children before dispatching.
func Accept[T any](n Node, v Visitor[T]) T {
	switch n := n.(type) {
	case *Program:
		return v.VisitProgram(n)
	case *Class:
		return v.VisitClass(n)
	case *Method:
		return v.VisitMethod(n)
	case *Parameter:
		return v.VisitParameter(n)
	case *Block:
		return v.VisitBlock(n)
	case *VariableDeclaration:
		return v.VisitVariableDeclaration(n)
	case *Assignment:
		return v.VisitAssignment(n)
	case *ReturnStatement:
		return v.VisitReturnStatement(n)
	case *ExpressionStatement:
		return v.VisitExpressionStatement(n)
	case *IfStatement:
		return v.VisitIfStatement(n)
	case *WhileLoop:
		return v.VisitWhileLoop(n)
	case *ForLoop:
		return v.VisitForLoop(n)
	case *Literal:
		return v.VisitLiteral(n)
	case *Variable:
		return v.VisitVariable(n)
	case *BinaryOperation:
		return v.VisitBinaryOperation(n)
	case *UnaryOperation:
		return v.VisitUnaryOperation(n)
	case *MethodCall:
		return v.VisitMethodCall(n)
	default:
		panic(fmt.Sprintf("ir: Accept called with %T", n))
	}
}

// AcceptStatement is Accept restricted to statements.
func AcceptStatement[T any](s Statement, v Visitor[T]) T {
	return Accept[T](s, v)
}

// AcceptExpression is Accept restricted to expressions.
func AcceptExpression[T any](e Expression, v Visitor[T]) T {
	return Accept[T](e, v)
}
