package lox

import "fmt"

// ScanError is a lexical error found while scanning the source. Scanning
// continues after one is recorded.
type ScanError struct {
	Line    int
	Message string
}

// NewScanError creates a new lexical error
func NewScanError(line int, message string) error {
	return &ScanError{line, message}
}

func (err *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", err.Line, err.Message)
}

// ParseError is the error that stops the parser, it records the token at
// which parsing failed.
type ParseError struct {
	Token   *Token
	Message string
}

// NewParseError creates a new parse error
func NewParseError(token *Token, message string) error {
	return &ParseError{token, message}
}

func (err *ParseError) Error() string {
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.Token.Line,
		err.Token.Lexeme,
		err.Message,
	)
}

// RuntimeError is raised by the interpreter when an operator is applied to
// operands of the wrong type.
type RuntimeError struct {
	Token   *Token
	Message string
}

// NewRuntimeError creates a new runtime error
func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", err.Message, err.Token.Line)
}
