package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mlbenefits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\naddr: \":9000\"\nlegal_file: /etc/legal.yaml\n"), 0o600))

	t.Setenv(ConfigFileEnv, path)
	t.Setenv("MLBENEFITS_ADDR", ":9100")
	t.Setenv("MLBENEFITS_LOG_FORMAT", "json")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel, "from file")
	assert.Equal(t, "/etc/legal.yaml", s.LegalFile)
	assert.Equal(t, ":9100", s.Addr, "env wins over file")
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "console", s.OutputFormat, "default kept")
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("MLBENEFITS_LOG_LEVEL", "loud")
	_, err := LoadSettings()
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := LoadSettings()
	assert.Error(t, err)
}
