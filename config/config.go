// Package config loads cae settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/cae/parser"
)

// Config holds the complete tool configuration
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
}

// ParserConfig holds the parser's resource limits
type ParserConfig struct {
	MaxDepth  int `toml:"max_depth"`
	MaxTokens int `toml:"max_tokens"`
}

// OutputConfig holds defaults for the command line tools
type OutputConfig struct {
	Format string    `toml:"format"`
	Color  ColorMode `toml:"color"`
}

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UnmarshalText accepts auto, always or never.
func (m *ColorMode) UnmarshalText(text []byte) error {
	switch mode := ColorMode(strings.ToLower(string(text))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		*m = mode
		return nil
	}
	return fmt.Errorf("invalid color mode %q: want auto, always or never", text)
}

// Enabled reports whether to color output going to a terminal (tty true)
// or elsewhere.
func (m ColorMode) Enabled(tty bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return tty
}

// Formats lists the accepted output formats.
var Formats = []string{"tree", "json", "yaml", "lines"}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Keys the file sets override
// the defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Locate finds the configuration file: $CAE_CONFIG if set, else the first
// of ./cae.toml and ~/.config/cae/config.toml that exists. It returns ""
// if there is none.
func Locate() string {
	if path := os.Getenv("CAE_CONFIG"); path != "" {
		return path
	}
	candidates := []string{"cae.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "cae", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
}

func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 1 {
		return fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth)
	}
	if c.Parser.MaxTokens < 0 {
		return fmt.Errorf("parser.max_tokens must not be negative, got %d", c.Parser.MaxTokens)
	}
	for _, f := range Formats {
		if c.Output.Format == f {
			return nil
		}
	}
	return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
}

// ParserOptions converts the parser section into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(c.Parser.MaxDepth)}
	if c.Parser.MaxTokens > 0 {
		opts = append(opts, parser.WithMaxTokens(c.Parser.MaxTokens))
	}
	return opts
}
