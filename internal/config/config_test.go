package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
server:
  addr: 127.0.0.1:9000
  read_timeout: 5s
repl:
  prompt: "lox> "
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal("json", cfg.Log.Format)
	assert.Equal("127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(5*time.Second, cfg.Server.ReadTimeout)
	// untouched keys keep their defaults
	assert.Equal(30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(1<<20, cfg.Server.MaxSourceSize)
	assert.Equal("lox> ", cfg.REPL.Prompt)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("GLOX_LOG_LEVEL", "warn")
	t.Setenv("GLOX_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := writeConfig(t, "repl:\n  prompt: \"$ \"\n")
	t.Setenv("GLOX_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "$ ", cfg.REPL.Prompt)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		path    func(t *testing.T) string
		errPart string
	}{
		{"missing explicit file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "nope.yaml")
		}, "read config"},
		{"malformed yaml", func(t *testing.T) string {
			return writeConfig(t, "log: [")
		}, "parse config"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad level", "log:\n  level: loud\n", `unknown log level "loud"`},
		{"bad format", "log:\n  format: xml\n", `unknown log format "xml"`},
		{"bad source size", "server:\n  max_source_size: 0\n", "max_source_size must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.content))
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoadLeavesInvalidEnvForOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GLOX_LOG_LEVEL", "bogus")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bogus", cfg.Log.Level)
	assert.Error(t, cfg.Validate())

	cfg.Log.Level = "debug"
	assert.NoError(t, cfg.Validate())
}
