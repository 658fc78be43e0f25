/*
Package lox implements the front end of a tree-walking interpreter for the
expression subset of Lox.

Grammars

	expression --> equality ;
	equality   --> comparison ( ( "!=" | "==" ) comparison )* ;
	comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
	term       --> factor ( ( "-" | "+" ) factor )* ;
	factor     --> unary ( ( "/" | "*" ) unary )* ;
	unary      --> ( "!" | "-" ) unary
	             | primary ;
	primary    --> NUMBER | STRING
	             | "true" | "false" | "nil"
	             | "(" expression ")" ;

A source goes through three stages. The Scanner turns it into tokens and
collects every lexical error without stopping. The Parser builds an Expr tree
and stops at the first ParseError. The Interpreter walks the tree and yields a
Value, or the first RuntimeError.
*/
package lox

//go:generate go run ../cmd/ast_codegen .
