package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Markdown output is wrapped in this container.
const (
	markdownOpen  = `<div class="markdown-content">`
	markdownClose = `</div>`
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// BuiltinConverter renders the documented Markdown subset with the
// line-oriented pipeline of this package.
type BuiltinConverter struct {
	highlighter Highlighter
	logger      *slog.Logger
}

// NewBuiltinConverter creates a BuiltinConverter. A nil highlighter keeps
// code blocks as plain escaped text; a nil logger discards diagnostics.
func NewBuiltinConverter(hl Highlighter, logger *slog.Logger) *BuiltinConverter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BuiltinConverter{highlighter: hl, logger: logger}
}

// ToHTML converts Markdown content to an HTML fragment.
// All state lives in this call, so one converter serves concurrent callers.
func (c *BuiltinConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := scrubSentinels(normalizeLineEndings(content))
	text, blocks := extractCodeBlocks(text, c.highlighter)

	frags := processBlocks(strings.Split(text, "\n"))
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, missing := blocks.Restore(wrapParagraphs(frags))
	if len(missing) > 0 {
		c.logger.Error("code block placeholders lost before restoration",
			slog.Int("missing", len(missing)),
			slog.Int("extracted", blocks.Len()))
	}

	return markdownOpen + body + markdownClose, nil
}

// GoldmarkConverter converts Markdown to HTML using goldmark (CommonMark + GFM).
// Raw HTML in the input is never passed through.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
// When highlight is set, fenced code is highlighted by chroma with CSS classes.
func NewGoldmarkConverter(highlight bool) *GoldmarkConverter {
	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			// Note: WithUnsafe() intentionally NOT used; raw HTML is omitted.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		src := []byte(scrubSentinels(normalizeLineEndings(content)))
		if err := c.md.Convert(src, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: markdownOpen + buf.String() + markdownClose}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
