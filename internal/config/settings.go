package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. MLBENEFITS_LOG_LEVEL.
const EnvPrefix = "MLBENEFITS_"

// ConfigFileEnv names the optional settings file.
const ConfigFileEnv = "MLBENEFITS_CONFIG"

// Settings are the process settings of the CLI and API.
type Settings struct {
	// LogLevel is debug, info, warn or error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is console or json.
	LogFormat string `koanf:"log_format"`
	// LegalFile is the yaml legal book.
	LegalFile string `koanf:"legal_file"`
	// TariffFile optionally replaces the built-in risk tariff.
	TariffFile string `koanf:"tariff_file"`
	// Addr is the API listen address.
	Addr string `koanf:"addr"`
	// OutputFormat is the default report format.
	OutputFormat string `koanf:"output_format"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:     "info",
		LogFormat:    "console",
		LegalFile:    "testdata/legal_book.yaml",
		Addr:         ":8080",
		OutputFormat: "console",
	}
}

// LoadSettings layers defaults, the yaml file named by MLBENEFITS_CONFIG and
// MLBENEFITS_* environment variables, lowest precedence first.
func LoadSettings() (*Settings, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	s := *DefaultSettings()
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidSettings, s.LogLevel)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidSettings, s.LogFormat)
	}
	if s.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidSettings)
	}
	if s.OutputFormat == "" {
		return fmt.Errorf("%w: output_format must not be empty", ErrInvalidSettings)
	}
	return nil
}
