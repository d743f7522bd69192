package assets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightTheme is the chroma style used when none is configured.
const DefaultHighlightTheme = "github"

// HighlightCSS returns the CSS for the chroma token classes emitted by
// highlighted code blocks, using the named chroma style.
func HighlightCSS(theme string) (string, error) {
	if theme == "" {
		theme = DefaultHighlightTheme
	}

	style, ok := chromastyles.Registry[strings.ToLower(theme)]
	if !ok {
		return "", fmt.Errorf("%w: highlight theme %q", ErrStyleNotFound, theme)
	}
	return writeCSS(style)
}

// HighlightThemes returns the available chroma style names in sorted order.
func HighlightThemes() []string {
	names := make([]string, 0, len(chromastyles.Registry))
	for name := range chromastyles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeCSS(style *chroma.Style) (string, error) {
	var sb strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&sb, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return sb.String(), nil
}
