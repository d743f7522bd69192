package pipeline

import (
	"net/url"
	"regexp"
	"strings"
)

// Inline patterns, applied in this order. Each runs only over text that no
// earlier pattern has turned into markup.
var (
	imagePattern  = regexp.MustCompile(`!\[([^\]]*)\]\(([^\s)]+)(?:\s+"([^"]+)")?\)`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)(?:\s+"([^"]+)")?\)`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)
	boldPattern   = regexp.MustCompile(`\*\*([^*<>]+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*<>]+?)\*`)
)

// span is a piece of an inline line. Markup spans are finished HTML;
// text spans are raw input still waiting to be escaped.
type span struct {
	text   string
	markup bool
}

type inlineRule struct {
	pattern *regexp.Regexp
	render  func(groups []string) string
}

var inlineRules = []inlineRule{
	{imagePattern, renderImage},
	{linkPattern, renderLink},
	{codePattern, func(g []string) string { return `<code class="inline-code">` + Escape(g[1]) + `</code>` }},
	{strikePattern, func(g []string) string { return "<del>" + Escape(g[1]) + "</del>" }},
	{boldPattern, func(g []string) string { return "<strong>" + Escape(g[1]) + "</strong>" }},
	{italicPattern, func(g []string) string { return "<em>" + Escape(g[1]) + "</em>" }},
}

// renderInline converts the inline constructs of a single line to HTML.
// Every byte of literal text is escaped exactly once.
func renderInline(line string) string {
	spans := []span{{text: line}}
	for _, rule := range inlineRules {
		spans = applyInlineRule(spans, rule)
	}

	var sb strings.Builder
	for _, s := range spans {
		if s.markup {
			sb.WriteString(s.text)
		} else {
			sb.WriteString(Escape(s.text))
		}
	}
	return sb.String()
}

// applyInlineRule splits each text span around the rule's matches.
func applyInlineRule(spans []span, rule inlineRule) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.markup {
			out = append(out, s)
			continue
		}
		matches := rule.pattern.FindAllStringSubmatchIndex(s.text, -1)
		if matches == nil {
			out = append(out, s)
			continue
		}
		last := 0
		for _, m := range matches {
			if m[0] > last {
				out = append(out, span{text: s.text[last:m[0]]})
			}
			out = append(out, span{text: rule.render(submatches(s.text, m)), markup: true})
			last = m[1]
		}
		if last < len(s.text) {
			out = append(out, span{text: s.text[last:]})
		}
	}
	return out
}

// submatches turns an index pair list into strings; unmatched groups are "".
func submatches(s string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if start := loc[2*i]; start >= 0 {
			groups[i] = s[start:loc[2*i+1]]
		}
	}
	return groups
}

// renderLink emits an anchor for absolute http(s) URLs. Anything else is
// shown as escaped text with the URL in parentheses, never dropped.
func renderLink(g []string) string {
	text, href, title := g[1], g[2], g[3]
	if !isWebURL(href) {
		fallback := Escape(text) + " (" + Escape(href)
		if title != "" {
			fallback += ` &quot;` + Escape(title) + `&quot;`
		}
		return fallback + ")"
	}

	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(Escape(href))
	sb.WriteString(`"`)
	if title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(Escape(title))
		sb.WriteString(`"`)
	}
	sb.WriteString(` target="_blank" rel="noopener noreferrer">`)
	sb.WriteString(Escape(text))
	sb.WriteString(`</a>`)
	return sb.String()
}

// renderImage emits an <img> with escaped attributes. The alt text is not
// inline-processed. Sources with a scheme other than http(s) fall back to
// escaped text.
func renderImage(g []string) string {
	alt, src, title := g[1], g[2], g[3]
	if !isImageSource(src) {
		return Escape(g[0])
	}

	var sb strings.Builder
	sb.WriteString(`<img src="`)
	sb.WriteString(Escape(src))
	sb.WriteString(`" alt="`)
	sb.WriteString(Escape(alt))
	sb.WriteString(`"`)
	if title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(Escape(title))
		sb.WriteString(`"`)
	}
	sb.WriteString(` class="markdown-image">`)
	return sb.String()
}

// isWebURL reports whether raw is an absolute http or https URL with a host.
func isWebURL(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && u.Hostname() != ""
}

// isImageSource accepts relative references and absolute http(s) URLs.
func isImageSource(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		return u.Host == ""
	case "http", "https":
		return u.Hostname() != ""
	}
	return false
}
