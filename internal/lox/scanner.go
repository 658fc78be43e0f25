package lox

import (
	"fmt"
	"strconv"
	"unicode"
)

// singleTokens maps runes that always form a token on their own.
var singleTokens = map[rune]TokenType{
	'(': LEFT_PAREN,
	')': RIGHT_PAREN,
	'{': LEFT_BRACE,
	'}': RIGHT_BRACE,
	',': COMMA,
	'.': DOT,
	'-': MINUS,
	'+': PLUS,
	';': SEMICOLON,
	'*': STAR,
}

// equalTokens maps runes that may be followed by '=' to the token types of
// the one- and two-rune forms.
var equalTokens = map[rune][2]TokenType{
	'!': {BANG, BANG_EQUAL},
	'=': {EQUAL, EQUAL_EQUAL},
	'<': {LESS, LESS_EQUAL},
	'>': {GREATER, GREATER_EQUAL},
}

// Scanner parses the input source and collects all the tokens that can be found
type Scanner struct {
	line    int
	start   int
	current int
	source  []rune
	tokens  []*Token
	errs    []error
	scanned bool
}

// NewScanner creates a new Lox token scanner
func NewScanner(source []rune) *Scanner {
	return &Scanner{
		line:   1,
		source: source,
		tokens: make([]*Token, 0),
	}
}

// Scan reads the source and collect all the tokens that were found from the
// source, together with every lexical error encountered on the way. The
// returned sequence always ends with a single EOF token.
func (scanner *Scanner) Scan() ([]*Token, []error) {
	if scanner.scanned {
		return scanner.tokens, scanner.errs
	}
	for !scanner.atEnd() {
		scanner.start = scanner.current
		scanner.scanToken()
	}
	scanner.tokens = append(scanner.tokens, NewToken(EOF, "", nil, scanner.line))
	scanner.scanned = true
	return scanner.tokens, scanner.errs
}

func (scanner *Scanner) scanToken() {
	r := scanner.advance()
	if typ, ok := singleTokens[r]; ok {
		scanner.emit(typ, nil)
		return
	}
	if pair, ok := equalTokens[r]; ok {
		if scanner.match('=') {
			scanner.emit(pair[1], nil)
		} else {
			scanner.emit(pair[0], nil)
		}
		return
	}

	switch {
	case r == ' ' || r == '\r' || r == '\t':
	case r == '\n':
		scanner.line++
	case r == '/':
		if !scanner.match('/') {
			scanner.emit(SLASH, nil)
			return
		}
		// the newline is left for the main loop to count
		for scanner.peek() != '\n' && !scanner.atEnd() {
			scanner.advance()
		}
	case r == '"':
		scanner.scanString()
	case isDigit(r):
		scanner.scanNumber()
	case isIdentStart(r):
		scanner.scanIdentifier()
	default:
		scanner.errorf(scanner.line, "Unexpected character: %c", r)
	}
}

func (scanner *Scanner) scanString() {
	openLine := scanner.line
	for scanner.peek() != '"' && !scanner.atEnd() {
		if scanner.peek() == '\n' {
			scanner.line++
		}
		scanner.advance()
	}
	if scanner.atEnd() {
		scanner.errorf(openLine, "Unterminated string.")
		return
	}
	scanner.advance()

	text := scanner.lexeme()
	scanner.tokens = append(scanner.tokens, NewToken(STRING, text, String(text[1:len(text)-1]), openLine))
}

func (scanner *Scanner) scanNumber() {
	scanner.skipDigits()
	if scanner.peek() == '.' && isDigit(scanner.peekNext()) {
		scanner.advance()
		scanner.skipDigits()
	}
	// ParseFloat cannot fail on a run of ASCII digits with an optional fraction.
	n, _ := strconv.ParseFloat(scanner.lexeme(), 64)
	scanner.emit(NUMBER, Number(n))
}

func (scanner *Scanner) scanIdentifier() {
	for isIdentStart(scanner.peek()) || isDigit(scanner.peek()) {
		scanner.advance()
	}
	typ, ok := KeywordTokens[scanner.lexeme()]
	if !ok {
		typ = IDENTIFIER
	}
	scanner.emit(typ, nil)
}

func (scanner *Scanner) skipDigits() {
	for isDigit(scanner.peek()) {
		scanner.advance()
	}
}

// lexeme returns the text between start and current.
func (scanner *Scanner) lexeme() string {
	return string(scanner.source[scanner.start:scanner.current])
}

// emit appends the current lexeme as a token on the current line.
func (scanner *Scanner) emit(typ TokenType, literal Value) {
	scanner.tokens = append(scanner.tokens, NewToken(typ, scanner.lexeme(), literal, scanner.line))
}

func (scanner *Scanner) errorf(line int, format string, args ...interface{}) {
	scanner.errs = append(scanner.errs, NewScanError(line, fmt.Sprintf(format, args...)))
}

func (scanner *Scanner) atEnd() bool {
	return scanner.current >= len(scanner.source)
}

func (scanner *Scanner) advance() rune {
	r := scanner.source[scanner.current]
	scanner.current++
	return r
}

// match consumes the next rune only if it equals expected.
func (scanner *Scanner) match(expected rune) bool {
	if scanner.atEnd() || scanner.source[scanner.current] != expected {
		return false
	}
	scanner.current++
	return true
}

func (scanner *Scanner) peek() rune {
	if scanner.atEnd() {
		return 0
	}
	return scanner.source[scanner.current]
}

func (scanner *Scanner) peekNext() rune {
	if scanner.current+1 >= len(scanner.source) {
		return 0
	}
	return scanner.source[scanner.current+1]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
