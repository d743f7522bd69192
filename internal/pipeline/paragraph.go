package pipeline

import "strings"

// lineBreak separates consecutive prose lines inside one paragraph.
const lineBreak = "<br>\n"

// wrapParagraphs joins fragments with newlines, wrapping each run of text
// fragments in a single <p>. Blank fragments end a run; block fragments
// end a run and are emitted bare, so a paragraph never encloses a block
// tag and an empty paragraph is never produced.
//
// Text fragments were escaped by the inline processor; nothing here
// escapes again.
func wrapParagraphs(frags []fragment) string {
	out := make([]string, 0, len(frags))
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, "<p>"+strings.Join(run, lineBreak)+"</p>")
		run = run[:0]
	}

	for _, f := range frags {
		switch f.kind {
		case fragText:
			if strings.TrimSpace(f.html) != "" {
				run = append(run, f.html)
			}
		case fragBlank:
			flush()
		case fragBlock:
			flush()
			out = append(out, f.html)
		}
	}
	flush()

	return strings.Join(out, "\n")
}
