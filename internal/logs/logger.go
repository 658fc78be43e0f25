// Package logs builds the structured logger shared by the glox commands.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ltungv/lox/exprlox/internal/config"
	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetLevel changes the level of every logger built by New.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// New returns a logger writing to writer in the configured format. When
// cfg.File is set every record is also appended as JSON to that file; the
// returned closer releases it.
func New(writer io.Writer, cfg config.Log) (*slog.Logger, io.Closer, error) {
	if err := SetLevel(cfg.Level); err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handlers []slog.Handler
	switch cfg.Format {
	case "json":
		handlers = append(handlers, slog.NewJSONHandler(writer, opts))
	default:
		handlers = append(handlers, slog.NewTextHandler(writer, opts))
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	}), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
