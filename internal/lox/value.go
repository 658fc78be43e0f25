package lox

import (
	"math"
	"strconv"
	"strings"
)

// ValueType tags the kind of a runtime value.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeString
)

func (t ValueType) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a Lox runtime value. The set of implementations is closed: Number,
// String, Bool and Nil.
type Value interface {
	Type() ValueType
	String() string
	isValue()
}

// Number is a double-precision Lox number.
type Number float64

// String is a Lox string.
type String string

// Bool is a Lox boolean.
type Bool bool

// Nil is the Lox nil value.
type Nil struct{}

func (Number) Type() ValueType { return TypeNumber }
func (String) Type() ValueType { return TypeString }
func (Bool) Type() ValueType   { return TypeBool }
func (Nil) Type() ValueType    { return TypeNil }

func (Number) isValue() {}
func (String) isValue() {}
func (Bool) isValue()   {}
func (Nil) isValue()    {}

func (n Number) String() string { return FormatNumber(float64(n)) }
func (s String) String() string { return string(s) }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (Nil) String() string      { return "nil" }

// FormatNumber returns the canonical display form of a number: the shortest
// decimal that round-trips, always carrying at least one fractional digit.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isTruthy follows Ruby's rule: nil and false are falsey, everything else is
// truthy.
func isTruthy(value Value) bool {
	switch v := value.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// isEqual compares tag and value. Values of different types are never equal.
func isEqual(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Nil:
		_, ok := b.(Nil)
		return ok
	}
	return false
}
