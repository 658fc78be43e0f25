// Package repl runs an interactive read-eval-print loop over the lox pipeline.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ltungv/lox/exprlox/internal/config"
	"github.com/ltungv/lox/exprlox/internal/lox"
)

// LineReader yields one line of input per call and io.EOF when the input is
// exhausted.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// NewReadline returns a line editor on the terminal configured by cfg.
func NewReadline(cfg config.REPL) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("start line editor: %w", err)
	}
	return rl, nil
}

// REPL evaluates every line it reads. A line starting with ":tokenize" or
// ":parse" runs only that far through the pipeline.
type REPL struct {
	reader   LineReader
	stdout   io.Writer
	reporter lox.Reporter
	logger   *slog.Logger
}

// New creates a new loop reading from reader. Results go to stdout and
// errors to the reporter.
func New(reader LineReader, stdout io.Writer, reporter lox.Reporter, logger *slog.Logger) *REPL {
	return &REPL{reader, stdout, reporter, logger}
}

// Run reads lines until the input ends, "exit" is entered or ctx is done.
// An error in one line never ends the loop.
func (r *REPL) Run(ctx context.Context) error {
	defer r.reader.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit":
			return nil
		}

		mode, source := splitCommand(line)
		res := lox.Run(mode, source)
		if err := res.Print(r.stdout, r.reporter); err != nil {
			return err
		}
		r.logger.Debug("evaluated line", "mode", mode.String(), "exit_code", lox.ExitCode(r.reporter))
		// an error on one line must not carry over to the next
		r.reporter.Reset()
	}
}

func splitCommand(line string) (lox.Mode, string) {
	if !strings.HasPrefix(line, ":") {
		return lox.ModeEvaluate, line
	}
	name, rest, _ := strings.Cut(line[1:], " ")
	mode, err := lox.ParseMode(name)
	if err != nil {
		return lox.ModeEvaluate, line
	}
	return mode, rest
}
