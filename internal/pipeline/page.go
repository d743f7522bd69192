package pipeline

import "strings"

// pageTemplate wraps a rendered fragment in a minimal HTML5 document.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{title}}</title>{{style}}
</head>
<body>
{{body}}
</body>
</html>`

// WrapPage places body in a standalone HTML5 document. The title is
// escaped; a non-empty css is inlined as a <style> block.
func WrapPage(title, body, css string) string {
	style := ""
	if css != "" {
		style = "\n<style>" + sanitizeCSS(css) + "</style>"
	}
	return strings.NewReplacer(
		"{{title}}", Escape(title),
		"{{style}}", style,
		"{{body}}", body,
	).Replace(pageTemplate)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
