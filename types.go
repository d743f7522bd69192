package mdview

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/tidwall/gjson"
)

// DeclaredType is the caller's classification of the content.
type DeclaredType int

const (
	TypeText     DeclaredType = iota // plain text, never interpreted
	TypeMarkdown                     // the Markdown dialect of the built-in engine
	TypeJSON                         // JSON, laid out as a document or pretty-printed
	TypeRemote                       // fetched content whose concrete type is resolved from its name or sniffed
)

// String returns the lowercase type name.
func (t DeclaredType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeMarkdown:
		return "markdown"
	case TypeJSON:
		return "json"
	case TypeRemote:
		return "remote"
	default:
		return fmt.Sprintf("DeclaredType(%d)", int(t))
	}
}

// typeNames maps accepted names and file extensions to types.
var typeNames = map[string]DeclaredType{
	"txt":      TypeText,
	"text":     TypeText,
	"md":       TypeMarkdown,
	"markdown": TypeMarkdown,
	"json":     TypeJSON,
}

// ParseDeclaredType maps a type name or extension (with or without the
// leading dot, any case) to a DeclaredType. "remote" is accepted as a name.
// Unknown values return TypeText and an error wrapping ErrUnsupportedType.
func ParseDeclaredType(s string) (DeclaredType, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if t, ok := typeNames[name]; ok {
		return t, nil
	}
	if name == "remote" {
		return TypeRemote, nil
	}
	return TypeText, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
}

// TypeForPath returns the type for a file path or URL path by extension.
func TypeForPath(p string) (DeclaredType, error) {
	ext := path.Ext(strings.ReplaceAll(p, "\\", "/"))
	if ext == "" {
		return TypeText, fmt.Errorf("%w: no extension in %q", ErrUnsupportedType, p)
	}
	t, ok := typeNames[strings.ToLower(ext[1:])]
	if !ok {
		return TypeText, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	return t, nil
}

// DetectType resolves the concrete type of remote content. A name with an
// extension decides by extension, unknown extensions meaning text. Without
// one the content is sniffed: a leading "# " or any "## " means Markdown,
// valid JSON means JSON, anything else is text.
func DetectType(name string, content []byte) DeclaredType {
	if name != "" {
		p := name
		if u, err := url.Parse(name); err == nil && u.Scheme != "" {
			p = u.Path
		}
		if path.Ext(p) != "" {
			t, _ := TypeForPath(p)
			return t
		}
	}

	trimmed := bytes.TrimSpace(content)
	switch {
	case bytes.HasPrefix(trimmed, []byte("# ")) || bytes.Contains(trimmed, []byte("## ")):
		return TypeMarkdown
	case len(trimmed) > 0 && gjson.ValidBytes(trimmed):
		return TypeJSON
	default:
		return TypeText
	}
}

// Request is one rendering job. It is not modified by rendering.
type Request struct {
	Content []byte
	Type    DeclaredType
	// Name is an optional path or URL, used only to resolve TypeRemote.
	Name string
}

// Result is a rendered HTML fragment.
type Result struct {
	HTML string
	// Type is the type the content was rendered as; for TypeRemote
	// requests it is the resolved concrete type.
	Type DeclaredType
}
