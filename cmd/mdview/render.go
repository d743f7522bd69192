package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/assets"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/hints"
	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrStdinType      = errors.New("stdin input requires --type")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrInvalidMaxSize = errors.New("invalid maximum size")
)

// stdinArg is the positional argument that reads from stdin.
const stdinArg = "-"

// runRenderCmd parses flags and runs the render command.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runRender(ctx, positional, flags, env)
}

// runRender orchestrates the rendering process.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.changed["max-size"] && flags.renderer.maxSize < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means unlimited)", ErrInvalidMaxSize, flags.renderer.maxSize)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, cfg.Log.Level, flags.common.quiet, flags.common.verbose)

	engine, err := mdview.ParseEngine(cfg.Render.Engine)
	if err != nil {
		return err
	}
	renderer := mdview.New(
		mdview.WithSizeLimit(cfg.Render.MaxSize),
		mdview.WithEngine(engine),
		mdview.WithHighlighting(cfg.Render.Highlight),
		mdview.WithSanitizer(cfg.Render.Sanitize),
		mdview.WithLogger(logger),
	)

	var forced *mdview.DeclaredType
	if flags.renderer.typ != "" {
		t, err := mdview.ParseDeclaredType(flags.renderer.typ)
		if err != nil {
			return err
		}
		forced = &t
	}

	params, err := buildOutputParams(cfg)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(positionalArgs, cfg)
	if err != nil {
		return err
	}
	if len(inputs) == 1 && inputs[0] == stdinArg {
		// The config default directory does not apply to stdin.
		return renderStdin(ctx, renderer, forced, flags.output, params, env)
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	var files []FileToRender
	for _, in := range inputs {
		if in == stdinArg {
			return fmt.Errorf("%w: '-' cannot be combined with file arguments", ErrUsage)
		}
		found, err := discoverFiles(in, outputDir, forced)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no renderable files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if len(files) > 1 && strings.HasSuffix(outputDir, ".html") {
		return fmt.Errorf("%w: --output %s names a file but %d inputs were found", ErrUsage, outputDir, len(files))
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers, len(files))
	logger.Debug("rendering batch", slog.Int("files", len(files)), slog.Int("workers", workers))

	results := renderBatch(ctx, renderer, files, workers, params, env.Now)

	summary, first := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d render(s) failed: %w", summary.Failed, len(results), first)
	}
	return nil
}

// renderStdin renders stdin to stdout or to output when it names a file.
func renderStdin(ctx context.Context, r Renderer, forced *mdview.DeclaredType, output string, params *outputParams, env *Environment) error {
	if forced == nil {
		return withHint(ErrStdinType, hints.ForStdinType())
	}

	content, err := fileutil.ReadLimited(env.Stdin, int64(params.maxSize))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	html, renderErr := renderContent(ctx, r, mdview.Request{Content: content, Type: *forced}, "stdin", params)

	switch {
	case output == "":
		writeFragment(env.Stdout, html)
	case strings.HasSuffix(output, ".html"):
		if err := fileutil.WriteFile(output, []byte(html)); err != nil {
			return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	default:
		return fmt.Errorf("%w: --output must name an .html file for stdin input", ErrUsage)
	}
	return renderErr
}

// loadConfig loads the config named by the flag, falling back to
// MDVIEW_CONFIG, or returns defaults when neither is set.
func loadConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			err = withHint(err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.renderer.engine != "" {
		cfg.Render.Engine = flags.renderer.engine
	}
	if flags.changed["highlight"] {
		cfg.Render.Highlight = flags.renderer.highlight
	}
	if flags.changed["sanitize"] {
		cfg.Render.Sanitize = flags.renderer.sanitize
	}
	if flags.changed["max-size"] {
		cfg.Render.MaxSize = flags.renderer.maxSize
	}
	if flags.page.baseURL != "" {
		cfg.Render.BaseURL = flags.page.baseURL
	}
	if flags.changed["page"] {
		cfg.Output.Page = flags.page.page
	}
	if flags.page.css != "" {
		cfg.Output.CSS = flags.page.css
	}
	if flags.page.style != "" {
		cfg.Output.Style = flags.page.style
	}
	if flags.page.styleDir != "" {
		cfg.Output.StyleDir = flags.page.styleDir
	}
	if flags.page.highlightTheme != "" {
		cfg.Output.HighlightTheme = flags.page.highlightTheme
	}
	if flags.common.verbose {
		cfg.Log.Level = "debug"
	}
}

// buildOutputParams assembles the page stylesheet and parses the base URL.
func buildOutputParams(cfg *config.Config) (*outputParams, error) {
	params := &outputParams{
		maxSize: cfg.Render.MaxSize,
		page:    cfg.Output.Page,
	}

	if params.page {
		css, err := buildStylesheet(cfg)
		if err != nil {
			return nil, err
		}
		params.css = css
	}

	if cfg.Render.BaseURL != "" {
		u, err := url.Parse(cfg.Render.BaseURL)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.Render.BaseURL)
		}
		params.baseURL = u
	}

	return params, nil
}

// buildStylesheet joins, in order, the named style, the highlight classes
// when highlighting is on, and the --css file.
func buildStylesheet(cfg *config.Config) (string, error) {
	var parts []string

	if cfg.Output.Style != "" {
		resolver, err := assets.NewResolver(cfg.Output.StyleDir)
		if err != nil {
			return "", err
		}
		css, err := resolver.LoadStyle(cfg.Output.Style)
		if err != nil {
			if errors.Is(err, assets.ErrStyleNotFound) {
				err = withHint(err, hints.ForStyleNotFound(assets.StyleNames()))
			}
			return "", err
		}
		parts = append(parts, css)
	}

	if cfg.Render.Highlight {
		css, err := assets.HighlightCSS(cfg.Output.HighlightTheme)
		if err != nil {
			return "", err
		}
		parts = append(parts, css)
	}

	if cfg.Output.CSS != "" {
		css, err := os.ReadFile(cfg.Output.CSS) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
		}
		parts = append(parts, string(css))
	}

	return strings.Join(parts, "\n"), nil
}

// resolveInputs returns the positional inputs or config default directory.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir returns the output flag or config default directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// newLogger builds the CLI logger on w. --verbose forces debug and --quiet
// limits output to errors; otherwise level comes from config.
func newLogger(w io.Writer, level string, quiet, verbose bool) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	if quiet {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// pageTitle derives a page title from an input path.
func pageTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
