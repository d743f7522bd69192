package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// fencePattern matches a fenced code span: an opening fence at line start
// with an optional language tag, a lazily matched body, and a closing fence
// alone on its line. The body group is optional so empty blocks match too.
var fencePattern = regexp.MustCompile("(?ms)^```([\\w+#.-]*)[ \\t]*\\n(?:(.*?)\\n)?```[ \\t]*$")

// defaultCodeLabel is shown for untagged blocks and unknown tags.
const defaultCodeLabel = "Code"

// languageLabels maps fence tags to the label displayed above the block.
var languageLabels = map[string]string{
	"bash":       "Bash",
	"c":          "C",
	"cpp":        "C++",
	"css":        "CSS",
	"diff":       "Diff",
	"dockerfile": "Dockerfile",
	"go":         "Go",
	"html":       "HTML",
	"java":       "Java",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"json":       "JSON",
	"markdown":   "Markdown",
	"md":         "Markdown",
	"php":        "PHP",
	"python":     "Python",
	"py":         "Python",
	"ruby":       "Ruby",
	"rust":       "Rust",
	"sh":         "Shell",
	"sql":        "SQL",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"xml":        "XML",
	"yaml":       "YAML",
	"yml":        "YAML",
}

// LanguageLabel returns the display label for a fence tag.
func LanguageLabel(tag string) string {
	if label, ok := languageLabels[strings.ToLower(tag)]; ok {
		return label
	}
	return defaultCodeLabel
}

// Highlighter renders the body of a code block as already-escaped HTML.
// It reports false when it has nothing better than plain escaping.
type Highlighter interface {
	Highlight(lang, code string) (string, bool)
}

// ChromaHighlighter highlights code with chroma using CSS classes,
// so the page stylesheet controls colors and no inline styles are emitted.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a class-based chroma highlighter.
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true), // the extractor owns <pre><code>
		),
		style: styles.Fallback,
	}
}

// Highlight tokenises code with the lexer registered for lang.
func (h *ChromaHighlighter) Highlight(lang, code string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", false
	}
	return sb.String(), true
}

// CodeBlocks is the side table built by code-block extraction.
// Tokens are kept in extraction order; each must be restored exactly once.
type CodeBlocks struct {
	tokens []string
	html   map[string]string
}

func newCodeBlocks() *CodeBlocks {
	return &CodeBlocks{html: make(map[string]string)}
}

// Len returns the number of extracted blocks.
func (c *CodeBlocks) Len() int {
	return len(c.tokens)
}

// Tokens returns the placeholders in extraction order.
func (c *CodeBlocks) Tokens() []string {
	return append([]string(nil), c.tokens...)
}

// add stores rendered HTML and returns its placeholder.
func (c *CodeBlocks) add(rendered string) string {
	token := PlaceholderStart + "codeblock-" + strconv.Itoa(len(c.tokens)) + PlaceholderEnd
	c.tokens = append(c.tokens, token)
	c.html[token] = rendered
	return token
}

// Restore substitutes every placeholder in s with its rendered block.
// Placeholders absent from s are returned as missing; their blocks are lost.
func (c *CodeBlocks) Restore(s string) (string, []string) {
	if len(c.tokens) == 0 {
		return s, nil
	}
	var missing []string
	pairs := make([]string, 0, 2*len(c.tokens))
	for _, token := range c.tokens {
		if !strings.Contains(s, token) {
			missing = append(missing, token)
			continue
		}
		pairs = append(pairs, token, c.html[token])
	}
	if len(pairs) == 0 {
		return s, missing
	}
	return strings.NewReplacer(pairs...).Replace(s), missing
}

// extractCodeBlocks replaces every fenced span in text with a placeholder
// and returns the rewritten text with its side table. A nil highlighter
// means plain escaping.
func extractCodeBlocks(text string, hl Highlighter) (string, *CodeBlocks) {
	blocks := newCodeBlocks()
	out := fencePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := fencePattern.FindStringSubmatch(match)
		tag := strings.ToLower(m[1])
		return blocks.add(renderCodeBlock(tag, m[2], hl))
	})
	return out, blocks
}

// renderCodeBlock builds the <pre> element for one fenced span.
// The body is byte-exact apart from escaping.
func renderCodeBlock(tag, body string, hl Highlighter) string {
	code := ""
	highlighted := false
	if hl != nil {
		code, highlighted = hl.Highlight(tag, body)
	}
	if !highlighted {
		code = Escape(body)
	}

	var sb strings.Builder
	sb.WriteString(`<pre class="code-block language-`)
	sb.WriteString(Escape(tag))
	sb.WriteString(`"><div class="code-label">`)
	sb.WriteString(Escape(LanguageLabel(tag)))
	sb.WriteString(`</div><code>`)
	sb.WriteString(code)
	sb.WriteString(`</code></pre>`)
	return sb.String()
}
