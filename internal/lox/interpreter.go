package lox

import "fmt"

// Interpreter exposes methods for evaluating then given Lox syntax tree. This
// struct implements ExprVisitor
type Interpreter struct{}

// NewInterpreter creates a new tree-walking interpreter
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Evaluate walks the tree and computes its value. An operand of the wrong type
// aborts the evaluation with a *RuntimeError.
func (in *Interpreter) Evaluate(expr Expr) (Value, error) {
	return in.eval(expr)
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG_EQUAL:
		return Bool(!isEqual(lhs, rhs)), nil
	case EQUAL_EQUAL:
		return Bool(isEqual(lhs, rhs)), nil

	case PLUS:
		switch l := lhs.(type) {
		case Number:
			if r, ok := rhs.(Number); ok {
				return l + r, nil
			}
		case String:
			if r, ok := rhs.(String); ok {
				return l + r, nil
			}
		case Bool, Nil:
		}
		return nil, NewRuntimeError(expr.Op, "Operands must be two numbers or two strings.")
	}

	l, r, err := checkNumberOperands(expr.Op, lhs, rhs)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Typ {
	case MINUS:
		return l - r, nil
	case STAR:
		return l * r, nil
	case SLASH:
		return l / r, nil
	case GREATER:
		return Bool(l > r), nil
	case GREATER_EQUAL:
		return Bool(l >= r), nil
	case LESS:
		return Bool(l < r), nil
	case LESS_EQUAL:
		return Bool(l <= r), nil
	}
	panic(fmt.Sprintf("unreachable: binary operator %s", expr.Op.Typ))
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	if expr.Value == nil {
		return Nil{}, nil
	}
	return expr.Value, nil
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	val, err := in.eval(expr.Expression)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG:
		return Bool(!isTruthy(val)), nil
	case MINUS:
		if num, ok := val.(Number); ok {
			return -num, nil
		}
		return nil, NewRuntimeError(expr.Op, "Operand must be a number.")
	}
	panic(fmt.Sprintf("unreachable: unary operator %s", expr.Op.Typ))
}

func (in *Interpreter) eval(expr Expr) (Value, error) {
	val, err := expr.Accept(in)
	if err != nil {
		return nil, err
	}
	return val.(Value), nil
}

func checkNumberOperands(op *Token, lhs, rhs Value) (Number, Number, error) {
	l, okLeft := lhs.(Number)
	r, okRight := rhs.(Number)
	if okLeft && okRight {
		return l, r, nil
	}
	return 0, 0, NewRuntimeError(op, "Operands must be numbers.")
}
