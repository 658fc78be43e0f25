package main

// glox runs Lox expressions through the scanner, the parser and the
// interpreter.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ltungv/lox/exprlox/internal/config"
	"github.com/ltungv/lox/exprlox/internal/logs"
	"github.com/ltungv/lox/exprlox/internal/lox"
	"github.com/ltungv/lox/exprlox/internal/repl"
	"github.com/ltungv/lox/exprlox/internal/server"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var version = "dev"

// exitError ends the process with code once the command returns.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// app carries what every subcommand needs once the config is loaded.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    config.Config
	logger *slog.Logger
	closer io.Closer

	newLineReader func(config.REPL) (repl.LineReader, error)
}

func main() {
	a := &app{
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		newLineReader: repl.NewReadline,
	}
	os.Exit(a.execute(os.Args[1:]))
}

// execute runs the command line args and returns the process exit status.
func (a *app) execute(args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.Execute()
	a.closeLogs()
	if err == nil {
		return lox.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(a.stderr, ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(a.stderr, err)
	return lox.ExitUsage
}

// closeLogs flushes and closes the log file, if one was opened.
func (a *app) closeLogs() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		fmt.Fprintf(a.stderr, "close log file: %v\n", err)
	}
	a.closer = nil
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glox",
		Short:         "Scan, parse and evaluate Lox expressions",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().String("config", "", "Path of the YAML config file (default glox.yaml, env GLOX_CONFIG)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (env GLOX_LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "Log format: text or json (env GLOX_LOG_FORMAT)")

	root.AddCommand(
		a.pipelineCmd(lox.ModeTokenize, "Print the tokens of a source file"),
		a.pipelineCmd(lox.ModeParse, "Print the syntax tree of an expression"),
		a.pipelineCmd(lox.ModeEvaluate, "Print the value of an expression"),
		a.replCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return &exitError{lox.ExitUsage, err}
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return &exitError{lox.ExitUsage, err}
	}

	logger, closer, err := logs.New(a.stderr, cfg.Log)
	if err != nil {
		return &exitError{lox.ExitUsage, err}
	}
	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	return nil
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &exitError{lox.ExitUsage, fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine())}
		}
		return nil
	}
}

func (a *app) pipelineCmd(mode lox.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   mode.String() + " <filename>",
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFile(mode, args[0])
		},
	}
}

// runFile runs the given file through the pipeline
func (a *app) runFile(mode lox.Mode, fpath string) error {
	bytes, err := os.ReadFile(fpath)
	if err != nil {
		return &exitError{lox.ExitNoInput, err}
	}

	a.logger.Debug("running file", "mode", mode.String(), "path", fpath, "size", len(bytes))
	res := lox.Run(mode, string(bytes))
	reporter := lox.NewSimpleReporter(a.stderr)
	if err := res.Print(a.stdout, reporter); err != nil {
		return &exitError{lox.ExitSoftware, err}
	}
	code := lox.ExitCode(reporter)
	a.logger.Debug("finished",
		"tokens", len(res.Tokens),
		"errors", len(res.Errors),
		"exit_code", code,
	)
	if code != lox.ExitOK {
		return &exitError{code: code}
	}
	return nil
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := a.newLineReader(a.cfg.REPL)
			if err != nil {
				return &exitError{lox.ExitSoftware, err}
			}
			reporter := lox.NewSimpleReporter(a.stderr)
			loop := repl.New(reader, a.stdout, reporter, a.logger)
			if err := loop.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return &exitError{lox.ExitSoftware, err}
			}
			return nil
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tokenize, parse and evaluate endpoints over HTTP",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if v, _ := cmd.Flags().GetString("addr"); v != "" {
				cfg.Addr = v
			}
			srv := server.New(cfg, a.logger)

			// Graceful shutdown
			done := make(chan struct{})
			stopped := make(chan struct{})
			go func() {
				defer close(stopped)
				a.stopOnSignal(srv.Shutdown, done)
			}()

			err := srv.Listen()
			close(done)
			<-stopped
			if err != nil {
				return &exitError{lox.ExitSoftware, err}
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080, env GLOX_ADDR)")
	return cmd
}

// stopOnSignal calls stop on SIGINT or SIGTERM. It returns without calling
// stop once done is closed.
func (a *app) stopOnSignal(stop func() error, done <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		a.logger.Info("shutting down")
		if err := stop(); err != nil {
			a.logger.Error("shutdown", "error", err)
		}
	case <-done:
	}
}
