// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package config loads ofxhost settings from defaults, a YAML file and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/ofxgo/ofxgo/internal/xdg"
)

// Config holds ofxhost settings.
type Config struct {
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
	Host    HostConfig    `koanf:"host" yaml:"host"`
	Output  string        `koanf:"output" yaml:"output"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Format string `koanf:"format" yaml:"format"`
	Level  string `koanf:"level" yaml:"level"`
}

// MetricsConfig configures the metrics and health endpoint.
type MetricsConfig struct {
	// Addr is the listen address. Empty disables the endpoint.
	Addr string `koanf:"addr" yaml:"addr"`
}

// HostConfig holds the simulated host capabilities sessions start from.
type HostConfig struct {
	APIVersion                 []int `koanf:"api_version" yaml:"api_version,flow"`
	SupportsMultipleClipDepths bool  `koanf:"supports_multiple_clip_depths" yaml:"supports_multiple_clip_depths"`
}

// Default values.
const (
	DefaultLogFormat = "json"
	DefaultLogLevel  = "info"
	DefaultOutput    = "text"
	configFileName   = "config.yaml"
)

// flagKeys maps flag names to config keys. Flags not listed here, such as
// --config itself, are not configuration.
var flagKeys = map[string]string{
	"log-format":           "log.format",
	"log-level":            "log.level",
	"metrics-addr":         "metrics.addr",
	"api-version":          "host.api_version",
	"multiple-clip-depths": "host.supports_multiple_clip_depths",
	"output":               "output",
}

// RegisterFlags adds the configuration flags with their defaults to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("log-format", DefaultLogFormat, "log format (json or text)")
	flags.String("log-level", DefaultLogLevel, "log level (debug, info, warn or error)")
	flags.String("metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	flags.IntSlice("api-version", []int{1, 4}, "OFX API version the simulated host reports")
	flags.Bool("multiple-clip-depths", false, "simulated host supports multiple clip depths")
	flags.StringP("output", "o", DefaultOutput, "report format (text or json)")
}

// DefaultPath returns the config file read when --config is not given.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads path, then flags. An empty path reads the default file if it
// exists. A flag the user did not set never overrides the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, oops.With("path", path).Wrapf(err, "failed to read config")
			}
		} else if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, oops.With("path", path).Wrapf(err, "config file not found")
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.Wrapf(err, "failed to read flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Wrapf(err, "failed to decode config")
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Format: DefaultLogFormat, Level: DefaultLogLevel},
		Host:   HostConfig{APIVersion: []int{1, 4}},
		Output: DefaultOutput,
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if len(c.Host.APIVersion) == 0 {
		c.Host.APIVersion = def.Host.APIVersion
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Output != "json" && c.Output != "text" {
		return oops.Errorf("output must be 'json' or 'text', got %q", c.Output)
	}
	if len(c.Host.APIVersion) == 0 {
		return oops.Errorf("host.api_version is required")
	}
	for _, v := range c.Host.APIVersion {
		if v < 0 {
			return oops.Errorf("host.api_version cannot be negative, got %v", c.Host.APIVersion)
		}
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, oops.Errorf("log.level must be debug, info, warn or error, got %q", name)
	}
}
