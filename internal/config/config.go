// Package config loads runtime settings from a YAML file, a .env file and
// SHEETGROUP_* environment variables, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/export"
	"github.com/ukaji3/sheetgroup-go/pkg/sheetgroup/models"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHEETGROUP_"

// Config is the full runtime configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Log     LogConfig      `yaml:"log"`
	Window  models.Window  `yaml:"window"`
	Export  export.Options `yaml:"export"`
	Preview PreviewConfig  `yaml:"preview"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// BodyLimit caps upload size, in echo's size notation ("10M").
	BodyLimit string `yaml:"body_limit"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
	// File, when set, receives log output instead of stderr.
	File string `yaml:"file"`
}

// PreviewConfig configures sheet previews.
type PreviewConfig struct {
	Rows int `yaml:"rows"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			BodyLimit: "32M",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Window:  models.DefaultWindow(),
		Export:  export.DefaultOptions(),
		Preview: PreviewConfig{Rows: 50},
	}
}

// Load builds a configuration from defaults, the optional YAML file at
// path, an optional .env file in the working directory and environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SHEETGROUP_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("ADDR", &c.Server.Addr)
	str("BODY_LIMIT", &c.Server.BodyLimit)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LOG_FILE", &c.Log.File)
	str("MISSING_MARKER", &c.Export.MissingMarker)

	for key, dst := range map[string]*int{
		"START_ROW":    &c.Window.StartRow,
		"END_ROW":      &c.Window.EndRow,
		"START_COL":    &c.Window.StartCol,
		"END_COL":      &c.Window.EndCol,
		"PREVIEW_ROWS": &c.Preview.Rows,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "SEPARATOR"); ok {
		sep, err := export.ParseSeparator(v)
		if err != nil {
			return err
		}
		c.Export.Separator = sep
	}
	if v, ok := lookup(EnvPrefix + "ENCODING"); ok {
		enc, err := export.ParseEncoding(v)
		if err != nil {
			return err
		}
		c.Export.Encoding = enc
	}
	if v, ok := lookup(EnvPrefix + "INCLUDE_INDEX"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sINCLUDE_INDEX: %w", EnvPrefix, err)
		}
		c.Export.IncludeIndex = b
	}
	return nil
}

// Validate checks the window, the export options and the log settings.
func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return err
	}
	if err := c.Export.Validate(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q (must be json or console)", c.Log.Format)
	}
	if c.Preview.Rows < 0 {
		return fmt.Errorf("preview rows must not be negative, got %d", c.Preview.Rows)
	}
	return nil
}
