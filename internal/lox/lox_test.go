package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func tokEOF(line int) *Token {
	return NewToken(EOF, "", nil, line)
}

func TestRunTokenize(t *testing.T) {
	testCases := []struct {
		src      string
		output   []string
		errors   []string
		exitCode int
	}{
		{"(()", []string{
			"LEFT_PAREN ( null",
			"LEFT_PAREN ( null",
			"RIGHT_PAREN ) null",
			"EOF  null",
		}, nil, ExitOK},
		{"", []string{"EOF  null"}, nil, ExitOK},
		{"123 123.40 \"hi\"", []string{
			"NUMBER 123 123.0",
			"NUMBER 123.40 123.4",
			"STRING \"hi\" hi",
			"EOF  null",
		}, nil, ExitOK},
		{"@", []string{"EOF  null"}, []string{
			"[line 1] Error: Unexpected character: @",
		}, ExitDataErr},
		{",$(\n#", []string{
			"COMMA , null",
			"LEFT_PAREN ( null",
			"EOF  null",
		}, []string{
			"[line 1] Error: Unexpected character: $",
			"[line 2] Error: Unexpected character: #",
		}, ExitDataErr},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		res := Tokenize(tc.src)
		assert.Equal(tc.output, res.Output, tc.src)
		assert.Equal(tc.exitCode, res.ExitCode, tc.src)
		var errs []string
		for _, err := range res.Errors {
			errs = append(errs, err.Error())
		}
		assert.Equal(tc.errors, errs, tc.src)
	}
}

func TestRunParse(t *testing.T) {
	testCases := []struct {
		src      string
		output   []string
		errors   []string
		exitCode int
	}{
		{"(1 + 2) * 3", []string{"(* (group (+ 1.0 2.0)) 3.0)"}, nil, ExitOK},
		{"\"hi\" == nil", []string{"(== hi nil)"}, nil, ExitOK},
		{"!true", []string{"(! true)"}, nil, ExitOK},
		{"(1 + 2", nil, []string{
			"[line 1] Error at '': Expect ')' after expression.",
		}, ExitDataErr},
		{"@ 1", nil, []string{
			"[line 1] Error: Unexpected character: @",
		}, ExitDataErr},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		res := ParseSource(tc.src)
		assert.Equal(tc.output, res.Output, tc.src)
		assert.Equal(tc.exitCode, res.ExitCode, tc.src)
		var errs []string
		for _, err := range res.Errors {
			errs = append(errs, err.Error())
		}
		assert.Equal(tc.errors, errs, tc.src)
	}
}

func TestRunEvaluate(t *testing.T) {
	testCases := []struct {
		src      string
		output   []string
		exitCode int
	}{
		{"(1 + 2) * 3", []string{"9.0"}, ExitOK},
		{"\"a\" + \"b\"", []string{"ab"}, ExitOK},
		{"8 - 4 - 2", []string{"2.0"}, ExitOK},
		{"!nil", []string{"true"}, ExitOK},
		{"!0", []string{"false"}, ExitOK},
		{"!false", []string{"true"}, ExitOK},
		{"10 / 4", []string{"2.5"}, ExitOK},
		{"1 / 0", []string{"Infinity"}, ExitOK},
		{"1 + \"a\"", nil, ExitSoftware},
		{"-\"a\"", nil, ExitSoftware},
		{"(1", nil, ExitDataErr},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		res := EvaluateSource(tc.src)
		assert.Equal(tc.output, res.Output, tc.src)
		assert.Equal(tc.exitCode, res.ExitCode, tc.src)
	}
}

func TestResultPrint(t *testing.T) {
	assert := assert.New(t)

	res := EvaluateSource("1 + \"a\"")
	report := newMockReporter()
	var out strings.Builder
	assert.NoError(res.Print(&out, report))
	assert.Empty(out.String())
	assert.True(report.HadRuntimeError())
	assert.False(report.HadError())
	assert.Len(report.errors, 1)

	res = ParseSource("-(2)")
	report = newMockReporter()
	out.Reset()
	assert.NoError(res.Print(&out, report))
	assert.Equal("(- (group 2.0))\n", out.String())
	assert.False(report.HadError())
}

func TestParseMode(t *testing.T) {
	assert := assert.New(t)
	for _, m := range []Mode{ModeTokenize, ModeParse, ModeEvaluate} {
		got, err := ParseMode(m.String())
		assert.NoError(err)
		assert.Equal(m, got)
	}
	_, err := ParseMode("run")
	assert.Error(err)
}
