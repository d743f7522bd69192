package pipeline

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON indicates the content is not well-formed JSON.
var ErrInvalidJSON = errors.New("malformed JSON")

// prettyOptions keeps key order and indents with four spaces.
var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "    ", SortKeys: false}

// FormatJSON renders JSON content. A top-level object with a title,
// description or sections field is laid out as a document; any other
// value is pretty-printed.
func FormatJSON(content string) (string, error) {
	if !gjson.Valid(content) {
		return "", ErrInvalidJSON
	}
	root := gjson.Parse(content)

	var sb strings.Builder
	sb.WriteString(`<div class="json-content">`)

	if title := field(root, "title"); title.Exists() {
		sb.WriteString("<h1>" + Escape(title.String()) + "</h1>")
	}
	if desc := field(root, "description"); desc.Exists() {
		sb.WriteString(`<p class="description">` + Escape(desc.String()) + "</p>")
	}

	if sections := field(root, "sections"); sections.IsArray() || sections.IsObject() {
		sections.ForEach(func(_, section gjson.Result) bool {
			if !section.IsObject() {
				return true
			}
			if title := field(section, "title"); title.Exists() {
				sb.WriteString("<h2>" + Escape(title.String()) + "</h2>")
			}
			if body := field(section, "content"); body.Exists() {
				sb.WriteString("<p>" + nl2br(body.String()) + "</p>")
			}
			return true
		})
	} else {
		formatted := strings.TrimRight(string(pretty.PrettyOptions([]byte(root.Raw), prettyOptions)), "\n")
		sb.WriteString(`<pre class="json-display">` + Escape(formatted) + "</pre>")
	}

	sb.WriteString("</div>")
	return sb.String(), nil
}

// field looks up a direct member of an object, treating null as absent.
// Non-object values have no fields.
func field(obj gjson.Result, name string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	var found gjson.Result
	obj.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			found = value
			return false
		}
		return true
	})
	if found.Type == gjson.Null {
		return gjson.Result{}
	}
	return found
}
