// Package config loads the glox settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "glox.yaml"

// Config holds every setting of the glox tool.
type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	REPL   REPL   `yaml:"repl"`
}

// Log configures the slog logger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
	// File, when set, receives a JSON copy of every record.
	File string `yaml:"file"`
}

// Server configures the HTTP API.
type Server struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxSourceSize int           `yaml:"max_source_size"`
}

// REPL configures the interactive prompt.
type REPL struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Server: Server{
			Addr:          ":8080",
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  30 * time.Second,
			MaxSourceSize: 1 << 20,
		},
		REPL: REPL{
			Prompt: "> ",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// GLOX_* environment variables. A missing file is not an error when path is
// the default one. The result is not validated, so that command line flags
// can still override it; call Validate once every source is applied.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = envOrDefault("GLOX_CONFIG", DefaultPath)
		explicit = path != DefaultPath
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	cfg.Log.Level = envOrDefault("GLOX_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("GLOX_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = envOrDefault("GLOX_LOG_FILE", cfg.Log.File)
	cfg.Server.Addr = envOrDefault("GLOX_ADDR", cfg.Server.Addr)
	cfg.REPL.Prompt = envOrDefault("GLOX_PROMPT", cfg.REPL.Prompt)
	cfg.REPL.HistoryFile = envOrDefault("GLOX_HISTORY_FILE", cfg.REPL.HistoryFile)
}

// Validate reports the first setting that holds an unsupported value.
func (cfg Config) Validate() error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}
	if cfg.Server.MaxSourceSize <= 0 {
		return fmt.Errorf("server.max_source_size must be positive, got %d", cfg.Server.MaxSourceSize)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
