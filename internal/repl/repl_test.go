package repl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/ltungv/lox/exprlox/internal/lox"
	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	lines  []string
	errs   map[int]error
	calls  int
	closed bool
}

func (r *fakeReader) Readline() (string, error) {
	defer func() { r.calls++ }()
	if err, ok := r.errs[r.calls]; ok {
		return "", err
	}
	if r.calls >= len(r.lines) {
		return "", io.EOF
	}
	return r.lines[r.calls], nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func runLines(t *testing.T, reader *fakeReader) (string, string, error) {
	t.Helper()
	var stdout, stderr strings.Builder
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := New(reader, &stdout, lox.NewSimpleReporter(&stderr), logger).Run(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestREPLEvaluatesEachLine(t *testing.T) {
	reader := &fakeReader{lines: []string{
		"(1 + 2) * 3",
		"",
		"1 + \"a\"",
		"\"a\" + \"b\"",
		"(1",
		"!nil",
	}}

	stdout, stderr, err := runLines(t, reader)

	assert := assert.New(t)
	assert.NoError(err)
	assert.True(reader.closed)
	assert.Equal("9.0\nab\ntrue\n", stdout)
	assert.Equal(
		"Operands must be two numbers or two strings.\n[line 1]\n"+
			"[line 1] Error at '': Expect ')' after expression.\n",
		stderr,
	)
}

func TestREPLModes(t *testing.T) {
	reader := &fakeReader{lines: []string{
		":parse 1 + 2",
		":tokenize ;",
		":bogus",
	}}

	stdout, stderr, err := runLines(t, reader)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("(+ 1.0 2.0)\nSEMICOLON ; null\nEOF  null\n", stdout)
	assert.Equal("[line 1] Error: Unexpected character: :\n", stderr)
}

func TestREPLStops(t *testing.T) {
	assert := assert.New(t)

	reader := &fakeReader{lines: []string{"1", "exit", "2"}}
	stdout, _, err := runLines(t, reader)
	assert.NoError(err)
	assert.Equal("1.0\n", stdout)

	reader = &fakeReader{
		lines: []string{"1", "2", "3"},
		errs:  map[int]error{1: readline.ErrInterrupt},
	}
	stdout, _, err = runLines(t, reader)
	assert.NoError(err)
	assert.Equal("1.0\n3.0\n", stdout)

	broken := errors.New("tty gone")
	reader = &fakeReader{
		lines: []string{"1"},
		errs:  map[int]error{1: broken},
	}
	_, _, err = runLines(t, reader)
	assert.ErrorIs(err, broken)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader = &fakeReader{lines: []string{"1"}}
	err = New(reader, io.Discard, lox.NewSimpleReporter(io.Discard), slog.Default()).Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.True(reader.closed)
}

// resetRecorder records the exit status seen by the reporter before every
// reset.
type resetRecorder struct {
	*lox.SimpleReporter
	codes []int
}

func (r *resetRecorder) Reset() {
	r.codes = append(r.codes, lox.ExitCode(r.SimpleReporter))
	r.SimpleReporter.Reset()
}

func TestREPLResetsReporterBetweenLines(t *testing.T) {
	reader := &fakeReader{lines: []string{"@", "1", "-\"a\"", "(1", "2"}}
	reporter := &resetRecorder{SimpleReporter: lox.NewSimpleReporter(io.Discard)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := New(reader, io.Discard, reporter, logger).Run(context.Background())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]int{lox.ExitDataErr, lox.ExitOK, lox.ExitSoftware, lox.ExitDataErr, lox.ExitOK}, reporter.codes)
	assert.Equal(lox.ExitOK, lox.ExitCode(reporter))
}
