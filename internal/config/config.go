package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits on configured values.
const (
	DefaultMaxSize = 1 << 20   // 1 MiB, matches the renderer default
	MaxMaxSize     = 256 << 20 // 256 MiB, beyond this a render is not interactive
	MaxDirLength   = 4096      // PATH_MAX on Linux
)

// userConfigDirName is the directory under os.UserConfigDir searched for
// named configs.
const userConfigDirName = "go-mdview"

// Config holds all configuration for rendering.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig defines renderer options.
type RenderConfig struct {
	MaxSize   int    `yaml:"maxSize"`   // bytes, 0 = unlimited
	Engine    string `yaml:"engine"`    // "builtin" or "goldmark" (default: "builtin")
	Highlight bool   `yaml:"highlight"` // chroma highlighting of fenced code
	Sanitize  bool   `yaml:"sanitize"`  // bluemonday pass over output
	BaseURL   string `yaml:"baseURL"`   // resolve relative links and images against this
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir     string `yaml:"defaultDir"`     // Default output directory (empty = stdout or next to source)
	Page           bool   `yaml:"page"`           // wrap fragments in a standalone HTML document
	CSS            string `yaml:"css"`            // stylesheet path inlined into pages
	Style          string `yaml:"style"`          // built-in or styleDir style name for pages
	StyleDir       string `yaml:"styleDir"`       // directory of {name}.css styles, searched before built-ins
	HighlightTheme string `yaml:"highlightTheme"` // chroma theme for highlighted code in pages
}

// LogConfig defines diagnostics options.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error" (default: "warn")
}

// Validate checks ranges and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Render.MaxSize < 0 || c.Render.MaxSize > MaxMaxSize {
		return fmt.Errorf("%w: render.maxSize must be between 0 and %d, got %d",
			ErrInvalidValue, MaxMaxSize, c.Render.MaxSize)
	}
	if err := validateEnum("render.engine", c.Render.Engine, "builtin", "goldmark"); err != nil {
		return err
	}
	if c.Render.BaseURL != "" && !fileutil.IsURL(c.Render.BaseURL) {
		return fmt.Errorf("%w: render.baseURL must be an http(s) URL, got %q", ErrInvalidValue, c.Render.BaseURL)
	}
	if err := validateEnum("log.level", c.Log.Level, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if c.Output.Style != "" {
		if err := assets.ValidateAssetName(c.Output.Style); err != nil {
			return fmt.Errorf("%w: output.style: %w", ErrInvalidValue, err)
		}
	}
	for field, dir := range map[string]string{
		"input.defaultDir":  c.Input.DefaultDir,
		"output.defaultDir": c.Output.DefaultDir,
		"output.css":        c.Output.CSS,
		"output.styleDir":   c.Output.StyleDir,
	} {
		if len(dir) > MaxDirLength {
			return fmt.Errorf("%w: %s (%d chars, max %d)", ErrInvalidValue, field, len(dir), MaxDirLength)
		}
	}
	return nil
}

// validateEnum accepts empty values (use default) and any listed value,
// ignoring case.
func validateEnum(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)",
		ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{MaxSize: DefaultMaxSize, Engine: "builtin"},
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in search order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdview/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
