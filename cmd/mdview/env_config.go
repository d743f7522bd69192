package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdview/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDVIEW_CONFIG: config file name or path
	Engine     string // MDVIEW_ENGINE: builtin, goldmark
	BaseURL    string // MDVIEW_BASE_URL: base for relative links and images
	InputDir   string // MDVIEW_INPUT_DIR: default input directory
	OutputDir  string // MDVIEW_OUTPUT_DIR: default output directory
	LogLevel   string // MDVIEW_LOG_LEVEL: debug, info, warn, error
	Style      string // MDVIEW_STYLE: page style name
	MaxSize    int    // MDVIEW_MAX_SIZE: size limit in bytes (-1 = unset)
	Workers    int    // MDVIEW_WORKERS: parallel workers
}

// knownEnvVars lists valid MDVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDVIEW_CONFIG":     true,
	"MDVIEW_ENGINE":     true,
	"MDVIEW_BASE_URL":   true,
	"MDVIEW_INPUT_DIR":  true,
	"MDVIEW_OUTPUT_DIR": true,
	"MDVIEW_LOG_LEVEL":  true,
	"MDVIEW_STYLE":      true,
	"MDVIEW_MAX_SIZE":   true,
	"MDVIEW_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDVIEW_CONFIG"),
		Engine:     os.Getenv("MDVIEW_ENGINE"),
		BaseURL:    os.Getenv("MDVIEW_BASE_URL"),
		InputDir:   os.Getenv("MDVIEW_INPUT_DIR"),
		OutputDir:  os.Getenv("MDVIEW_OUTPUT_DIR"),
		LogLevel:   os.Getenv("MDVIEW_LOG_LEVEL"),
		Style:      os.Getenv("MDVIEW_STYLE"),
		MaxSize:    -1,
	}

	if size := os.Getenv("MDVIEW_MAX_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n >= 0 {
			cfg.MaxSize = n
		}
	}

	if workers := os.Getenv("MDVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDVIEW_* variables.
// Helps catch typos like MDVIEW_MAXSIZE instead of MDVIEW_MAX_SIZE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDVIEW_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.BaseURL != "" {
		cfg.Render.BaseURL = env.BaseURL
	}
	if env.MaxSize >= 0 {
		cfg.Render.MaxSize = env.MaxSize
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Style != "" {
		cfg.Output.Style = env.Style
	}
}
