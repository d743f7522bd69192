package mdview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-mdview/internal/pipeline"
	"github.com/alnah/go-mdview/internal/security"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.BuiltinConverter)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.Highlighter   = (*pipeline.ChromaHighlighter)(nil)
)

// Renderer turns requests into HTML fragments.
// Create with New; a Renderer is immutable and safe for concurrent use.
type Renderer struct {
	cfg       rendererConfig
	logger    *slog.Logger
	filter    *security.Filter
	markdown  pipeline.HTMLConverter
	sanitizer *pipeline.Sanitizer
}

// New creates a Renderer with the default size limit and the built-in
// Markdown engine. Use options to customize behavior.
func New(opts ...Option) *Renderer {
	r := &Renderer{cfg: rendererConfig{sizeLimit: DefaultSizeLimit}}
	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.cfg.logger
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.filter = security.NewFilter(r.logger)

	// Tests may inject a converter before this point.
	if r.markdown == nil {
		switch r.cfg.engine {
		case EngineGoldmark:
			r.markdown = pipeline.NewGoldmarkConverter(r.cfg.highlight)
		default:
			var hl pipeline.Highlighter
			if r.cfg.highlight {
				hl = pipeline.NewChromaHighlighter()
			}
			r.markdown = pipeline.NewBuiltinConverter(hl, r.logger)
		}
	}

	if r.cfg.sanitize {
		r.sanitizer = pipeline.NewSanitizer()
	}
	return r
}

// Render screens and renders one request.
//
// On failure the returned Result is still non-nil: its HTML is the escaped,
// user-visible error fragment, and the error is a *RenderError wrapping one
// of the sentinel errors. Recovers from internal panics so they never reach
// the caller.
func (r *Renderer) Render(ctx context.Context, req Request) (res *Result, err error) {
	declared := req.Type
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("render panic", slog.Any("panic", p))
			res, err = r.fail(declared, &RenderError{Kind: ErrRenderFailed, Err: fmt.Errorf("internal error: %v", p)})
		}
	}()

	if err := ctx.Err(); err != nil {
		return r.fail(declared, &RenderError{Kind: ErrRenderFailed, Err: err})
	}

	if !isKnownType(declared) {
		r.logger.Warn("falling back to plain text",
			slog.String("error", fmt.Sprintf("%v: %s", ErrUnsupportedType, declared)))
		declared = TypeText
	}

	scan := security.ContentMarkup
	if declared == TypeText {
		scan = security.ContentText
	}
	if v := r.filter.Check(req.Content, scan, r.cfg.sizeLimit); !v.Allowed {
		return r.fail(declared, r.rejection(v))
	}

	resolved := declared
	if declared == TypeRemote {
		resolved = DetectType(req.Name, req.Content)
		r.logger.Debug("resolved remote content type",
			slog.String("name", req.Name),
			slog.String("type", resolved.String()))
	}

	start := time.Now()
	content := strings.ToValidUTF8(string(req.Content), "\uFFFD")

	var html string
	switch resolved {
	case TypeJSON:
		if len(bytes.TrimSpace(req.Content)) == 0 {
			html = `<div class="json-content"></div>`
			break
		}
		html, err = pipeline.FormatJSON(content)
		if err != nil {
			return r.fail(resolved, &RenderError{Kind: ErrDecodeFailed})
		}
	case TypeMarkdown:
		html, err = r.markdown.ToHTML(ctx, content)
		if err != nil {
			return r.fail(resolved, &RenderError{Kind: ErrRenderFailed, Err: err})
		}
	default:
		html = pipeline.FormatText(content)
	}

	if r.sanitizer != nil {
		html = r.sanitizer.Sanitize(html)
	}

	r.logger.Debug("rendered",
		slog.String("type", resolved.String()),
		slog.Int("bytes", len(req.Content)),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{HTML: html, Type: resolved}, nil
}

// Render renders content with a default Renderer limited to sizeLimit
// bytes (zero for no limit). A negative limit yields the error fragment
// and an ErrRenderFailed error.
func Render(content []byte, t DeclaredType, sizeLimit int) (*Result, error) {
	if sizeLimit < 0 {
		rerr := &RenderError{Kind: ErrRenderFailed, Reason: "negative size limit"}
		return &Result{HTML: pipeline.FormatError(userMessage(rerr)), Type: t}, rerr
	}
	return New(WithSizeLimit(sizeLimit)).Render(context.Background(), Request{Content: content, Type: t})
}

// isKnownType reports whether t is one of the declared types.
func isKnownType(t DeclaredType) bool {
	return t >= TypeText && t <= TypeRemote
}

// rejection converts a security verdict into an error.
func (r *Renderer) rejection(v security.Verdict) *RenderError {
	if v.Reason == security.ReasonTooLarge {
		return &RenderError{Kind: ErrContentTooLarge, Reason: "maximum " + formatSize(r.cfg.sizeLimit)}
	}
	return &RenderError{Kind: ErrSecurityRejected, Reason: v.Reason.String(), Rule: v.Rule}
}

// fail builds the error result for rerr.
func (r *Renderer) fail(t DeclaredType, rerr *RenderError) (*Result, error) {
	return &Result{HTML: pipeline.FormatError(userMessage(rerr)), Type: t}, rerr
}

// userMessage is the text shown in the error fragment. It never includes
// any part of the rejected content.
func userMessage(e *RenderError) string {
	switch e.Kind {
	case ErrContentTooLarge:
		return "Error: content too large (" + e.Reason + ")"
	case ErrSecurityRejected:
		return "Content blocked: " + e.Reason
	case ErrDecodeFailed:
		return "Error processing JSON content"
	default:
		return "Error: the content could not be rendered"
	}
}

// formatSize renders a byte count the way limits are usually configured.
func formatSize(n int) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
