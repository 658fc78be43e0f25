package lox

import (
	"fmt"
	"strings"
)

// AstPrinter renders a syntax tree in a fully-parenthesized prefix notation,
// e.g. `(* (group (+ 1.0 2.0)) 3.0)`.
type AstPrinter struct{}

func (printer *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(printer)
	return s.(string)
}

func (printer *AstPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	return printer.parenthesize(expr.Op.Lexeme, expr.Left, expr.Right), nil
}

func (printer *AstPrinter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return printer.parenthesize("group", expr.Expression), nil
}

func (printer *AstPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	if expr.Value == nil {
		return Nil{}.String(), nil
	}
	return expr.Value.String(), nil
}

func (printer *AstPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	return printer.parenthesize(expr.Op.Lexeme, expr.Expression), nil
}

func (printer *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%s", name)
	for _, expr := range exprs {
		s, _ := expr.Accept(printer)
		fmt.Fprintf(&b, " %s", s)
	}
	b.WriteString(")")
	return b.String()
}
