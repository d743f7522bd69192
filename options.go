package mdview

import (
	"fmt"
	"log/slog"
	"strings"
)

// Engine selects the Markdown renderer.
type Engine int

const (
	// EngineBuiltin is the line-oriented renderer of the documented dialect.
	EngineBuiltin Engine = iota
	// EngineGoldmark renders CommonMark with GFM extensions via goldmark.
	// Raw HTML in the input is omitted.
	EngineGoldmark
)

// String returns the engine name accepted by ParseEngine.
func (e Engine) String() string {
	switch e {
	case EngineBuiltin:
		return "builtin"
	case EngineGoldmark:
		return "goldmark"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine maps "builtin" or "goldmark" (any case) to an Engine.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "builtin":
		return EngineBuiltin, nil
	case "goldmark":
		return EngineGoldmark, nil
	default:
		return EngineBuiltin, fmt.Errorf("%w: %q (valid: builtin, goldmark)", ErrUnsupportedEngine, s)
	}
}

// DefaultSizeLimit is the content size limit used when none is configured.
const DefaultSizeLimit = 1 << 20

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds the settings applied by options.
type rendererConfig struct {
	sizeLimit int
	engine    Engine
	highlight bool
	sanitize  bool
	logger    *slog.Logger
}

// WithSizeLimit sets the maximum content size in bytes. Zero disables the
// limit. Panics if n < 0 (programmer error, similar to time.NewTicker).
func WithSizeLimit(n int) Option {
	if n < 0 {
		panic("mdview: WithSizeLimit size must not be negative")
	}
	return func(r *Renderer) {
		r.cfg.sizeLimit = n
	}
}

// WithLogger sets the logger for security rejections and diagnostics.
// A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.cfg.logger = l
	}
}

// WithEngine selects the Markdown engine.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		r.cfg.engine = e
	}
}

// WithHighlighting enables chroma syntax highlighting of fenced code.
// Highlighted code carries CSS classes; the caller supplies the stylesheet.
func WithHighlighting(on bool) Option {
	return func(r *Renderer) {
		r.cfg.highlight = on
	}
}

// WithSanitizer enables a bluemonday pass over every rendered fragment.
func WithSanitizer(on bool) Option {
	return func(r *Renderer) {
		r.cfg.sanitize = on
	}
}
