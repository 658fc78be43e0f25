package lox

import (
	"fmt"
	"io"
)

// Exit statuses, following sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

// Mode selects how far through the pipeline a source is run.
type Mode int

const (
	ModeTokenize Mode = iota
	ModeParse
	ModeEvaluate
)

func (m Mode) String() string {
	switch m {
	case ModeTokenize:
		return "tokenize"
	case ModeParse:
		return "parse"
	case ModeEvaluate:
		return "evaluate"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode named s.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeTokenize, ModeParse, ModeEvaluate} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Result holds everything produced by running a source through the pipeline.
// Output holds the lines meant for standard output, Errors the lexical, parse
// or runtime errors in the order they were found.
type Result struct {
	Mode     Mode
	Tokens   []*Token
	Expr     Expr
	Value    Value
	Output   []string
	Errors   []error
	ExitCode int
}

// Run takes source through the stages required by mode.
func Run(mode Mode, source string) *Result {
	res := &Result{Mode: mode}

	tokens, errs := NewScanner([]rune(source)).Scan()
	res.Tokens = tokens
	res.Errors = append(res.Errors, errs...)
	if mode == ModeTokenize {
		for _, tok := range tokens {
			res.Output = append(res.Output, tok.String())
		}
	}
	if len(errs) > 0 {
		res.ExitCode = ExitDataErr
		return res
	}
	if mode == ModeTokenize {
		return res
	}

	expr, err := NewParser(tokens).Parse()
	if err != nil {
		res.Errors = append(res.Errors, err)
		res.ExitCode = ExitDataErr
		return res
	}
	res.Expr = expr
	if mode == ModeParse {
		printer := &AstPrinter{}
		res.Output = append(res.Output, printer.Print(expr))
		return res
	}

	val, err := NewInterpreter().Evaluate(expr)
	if err != nil {
		res.Errors = append(res.Errors, err)
		res.ExitCode = ExitSoftware
		return res
	}
	res.Value = val
	res.Output = append(res.Output, val.String())
	return res
}

// Tokenize scans source.
func Tokenize(source string) *Result {
	return Run(ModeTokenize, source)
}

// ParseSource scans and parses source.
func ParseSource(source string) *Result {
	return Run(ModeParse, source)
}

// EvaluateSource scans, parses and evaluates source.
func EvaluateSource(source string) *Result {
	return Run(ModeEvaluate, source)
}

// Print writes the output lines to stdout and hands every error to the
// reporter.
func (res *Result) Print(stdout io.Writer, reporter Reporter) error {
	for _, err := range res.Errors {
		reporter.Report(err)
	}
	for _, line := range res.Output {
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}
