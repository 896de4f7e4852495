// Package config loads CLI settings from defaults, an optional overview.yaml,
// OVERVIEW_* environment variables and explicitly set flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix      = "OVERVIEW_"
	DefaultTheme   = "classic"
	DefaultColor   = "auto"
	DefaultOutput  = "text"
	DefaultLogLvl  = "info"
	configBaseName = "overview"
)

var (
	Themes  = []string{"classic", "neon", "mono"}
	Colors  = []string{"auto", "always", "never"}
	Outputs = []string{"text", "table", "markdown", "json"}
)

// Config holds all CLI configuration options.
type Config struct {
	Content  string `koanf:"content"`
	Theme    string `koanf:"theme"`
	Color    string `koanf:"color"`
	Output   string `koanf:"output"`
	LogLevel string `koanf:"log_level"`
	LogFile  string `koanf:"log_file"`
	Verbose  bool   `koanf:"verbose"`
	Width    int    `koanf:"width"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"content":   "",
		"theme":     DefaultTheme,
		"color":     DefaultColor,
		"output":    DefaultOutput,
		"log_level": DefaultLogLvl,
		"log_file":  "",
		"verbose":   false,
		"width":     0,
	}
}

// findConfigFile returns the explicit path, or overview.yaml / overview.yml
// in the working directory, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{configBaseName + ".yaml", configBaseName + ".yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a Config. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// OVERVIEW_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !k.Exists(key) {
				// Command-local flags (--query, --force, ...) are not config.
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output == "md" {
		c.Output = "markdown"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks enum-valued settings.
func (c *Config) Validate() error {
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	if !slices.Contains(Colors, c.Color) {
		return fmt.Errorf("invalid color %q (want one of %s)", c.Color, strings.Join(Colors, ", "))
	}
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output %q (want one of %s)", c.Output, strings.Join(Outputs, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Width < 0 {
		return fmt.Errorf("invalid width %d", c.Width)
	}
	return nil
}

// Level parses LogLevel. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
