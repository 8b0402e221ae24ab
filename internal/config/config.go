package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ILLUMITERM"

// PathEnv names the variable that overrides the config file location
const PathEnv = EnvPrefix + "_CONFIG"

// Frontend names
const (
	FrontendGTK = "gtk"
	FrontendCLI = "cli"
)

// Config holds all application configuration. Environment variables are the
// upper-cased field path under EnvPrefix, e.g. ILLUMITERM_FONT_SIZE or
// ILLUMITERM_LOGGING_DEVELOPMENT.
type Config struct {
	Frontend string     `toml:"frontend" yaml:"frontend"`
	Font     FontConfig `toml:"font" yaml:"font"`
	Logging  LogConfig  `toml:"logging" yaml:"logging"`
}

// FontConfig is the terminal font; Size is in points.
type FontConfig struct {
	Family string  `toml:"family" yaml:"family"`
	Size   float64 `toml:"size" yaml:"size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `toml:"level" yaml:"level"`
	Development bool   `toml:"development" yaml:"development"`
	Output      string `toml:"output" yaml:"output"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Frontend: FrontendGTK,
		Font: FontConfig{
			Family: "Monospace",
			Size:   12,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Output:      "stderr",
		},
	}
}

// Load builds the configuration from defaults, then the config file if one
// exists, then ILLUMITERM_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := Path()
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	// No default tags: unset variables leave file values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns the default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// fileNames are tried in order in the config directory
var fileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Path returns the config file location and whether it was set explicitly
// through ILLUMITERM_CONFIG. Without it, the first of config.toml,
// config.yaml and config.yml found in the config directory wins; config.toml
// is returned when none exists.
func Path() (string, bool) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	dir = filepath.Join(dir, "illumiterm")
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, false
		}
	}
	return filepath.Join(dir, fileNames[0]), false
}

// loadFile decodes path over cfg. A missing file is only an error when the
// path was given explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := decode(cfg, path, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// decode picks the format from the file extension; anything not YAML is TOML
func decode(cfg *Config, path string, data []byte) error {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	switch c.Frontend {
	case FrontendGTK, FrontendCLI:
	default:
		return fmt.Errorf("unknown frontend %q (want %q or %q)", c.Frontend, FrontendGTK, FrontendCLI)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Font.Size)
	}
	return nil
}
