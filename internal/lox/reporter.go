package lox

import (
	"errors"
	"fmt"
	"io"
)

// Reporter defines the interface for structure that can display errors to the
// user. A reporter is defined to separated errors reporting code from errors
// displaying code. Fully-features languages have a complex setup for reporting
// errors to user.
type Reporter interface {
	Report(err error)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

// SimpleReporter writes error as-is to inner writer
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) *SimpleReporter {
	return &SimpleReporter{writer: writer}
}

func (reporter *SimpleReporter) Report(err error) {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
	fmt.Fprintln(reporter.writer, err)
}

func (reporter *SimpleReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *SimpleReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *SimpleReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

// ExitCode returns the exit status for what reporter has seen so far. Runtime
// errors take precedence over lexical and parse errors.
func ExitCode(reporter Reporter) int {
	switch {
	case reporter.HadRuntimeError():
		return ExitSoftware
	case reporter.HadError():
		return ExitDataErr
	}
	return ExitOK
}
