package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// fragmentKind tells the paragraph wrapper how to treat a fragment.
type fragmentKind int

const (
	fragBlank fragmentKind = iota // ends the current paragraph
	fragBlock                     // finished block markup, never wrapped
	fragText                      // inline-processed prose, joined into paragraphs
)

// fragment is one emitted piece of HTML, one per input line or per
// synthetic open/close tag.
type fragment struct {
	kind fragmentKind
	html string
}

var (
	placeholderLine  = regexp.MustCompile("^" + PlaceholderStart + `codeblock-\d+` + PlaceholderEnd + `$`)
	headingPattern   = regexp.MustCompile(`^(#{1,6}) (.*)$`)
	tableRowPattern  = regexp.MustCompile(`^\|(.+)\|[ \t]*$`)
	tableSepPattern  = regexp.MustCompile(`^\|[-|: ]+\|[ \t]*$`)
	quotePattern     = regexp.MustCompile(`^\s*((?:>\s*)+)\s?(.*)$`)
	orderedPattern   = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.*)$`)
	unorderedPattern = regexp.MustCompile(`^(\s*)- (.*)$`)
)

// indentUnit is the number of leading spaces per list nesting level.
const indentUnit = 2

// sourceLine is a line after the block pre-pass. Lines claimed by a
// pre-pass rule carry finished HTML and skip the nesting state machine's
// list and quote handling.
type sourceLine struct {
	text  string
	html  string
	block bool
}

// lineRule tries to claim the line at lines[i]. It returns the rendered
// HTML and how many lines it consumed.
type lineRule func(lines []string, i int) (html string, consumed int, ok bool)

// blockRules run in priority order; the first rule that matches wins.
var blockRules = []lineRule{
	placeholderRule,
	horizontalRule,
	tableRule,
	headingRule,
}

// prepass applies the block rules that do not depend on nesting state.
func prepass(lines []string) []sourceLine {
	out := make([]sourceLine, 0, len(lines))
	for i := 0; i < len(lines); {
		claimed := false
		for _, rule := range blockRules {
			if html, n, ok := rule(lines, i); ok {
				out = append(out, sourceLine{html: html, block: true})
				i += n
				claimed = true
				break
			}
		}
		if !claimed {
			out = append(out, sourceLine{text: lines[i]})
			i++
		}
	}
	return out
}

func placeholderRule(lines []string, i int) (string, int, bool) {
	if placeholderLine.MatchString(lines[i]) {
		return lines[i], 1, true
	}
	return "", 0, false
}

func horizontalRule(lines []string, i int) (string, int, bool) {
	if lines[i] == "---" {
		return "<hr>", 1, true
	}
	return "", 0, false
}

func headingRule(lines []string, i int) (string, int, bool) {
	m := headingPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return "", 0, false
	}
	tag := "h" + strconv.Itoa(len(m[1]))
	return "<" + tag + ">" + Escape(m[2]) + "</" + tag + ">", 1, true
}

// tableRule claims a header row, a separator row and any body rows that
// follow. Cell text is escaped, not inline-processed.
func tableRule(lines []string, i int) (string, int, bool) {
	if i+1 >= len(lines) || !tableRowPattern.MatchString(lines[i]) || !tableSepPattern.MatchString(lines[i+1]) {
		return "", 0, false
	}

	var sb strings.Builder
	sb.WriteString(`<table class="markdown-table"><thead><tr>`)
	for _, cell := range tableCells(lines[i]) {
		sb.WriteString("<th>" + Escape(cell) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")

	n := 2
	for ; i+n < len(lines) && tableRowPattern.MatchString(lines[i+n]); n++ {
		sb.WriteString("<tr>")
		for _, cell := range tableCells(lines[i+n]) {
			sb.WriteString("<td>" + Escape(cell) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String(), n, true
}

// tableCells splits a pipe-delimited row into trimmed cells.
func tableCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimSuffix(strings.TrimPrefix(row, "|"), "|")
	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// stackEntry is a pending closing tag. seq records when it was opened so
// closers from the two stacks can be emitted in reverse open order.
type stackEntry struct {
	closer string
	indent int
	seq    int
}

// blockState drives the single forward pass over lines. The list and
// quote stacks are independent: a quote line never flushes an open list.
type blockState struct {
	lists  []stackEntry
	quotes []stackEntry
	seq    int
	out    []fragment
}

// processBlocks runs the pre-pass and the nesting state machine over lines.
func processBlocks(lines []string) []fragment {
	s := &blockState{out: make([]fragment, 0, len(lines))}
	for _, ln := range prepass(lines) {
		s.processLine(ln)
	}
	s.closeAll()
	return s.out
}

func (s *blockState) processLine(ln sourceLine) {
	if ln.block {
		s.closeAll()
		s.emit(fragBlock, ln.html)
		return
	}

	if strings.TrimSpace(ln.text) == "" {
		s.closeAll()
		s.emit(fragBlank, "")
		return
	}

	if m := quotePattern.FindStringSubmatch(ln.text); m != nil {
		s.quoteLine(strings.Count(m[1], ">"), m[2])
		return
	}

	if m := orderedPattern.FindStringSubmatch(ln.text); m != nil && m[3] != "" {
		s.listItem("ol", len(m[1])/indentUnit, m[3])
		return
	}

	if m := unorderedPattern.FindStringSubmatch(ln.text); m != nil && m[2] != "" {
		s.listItem("ul", len(m[1])/indentUnit, m[2])
		return
	}

	s.closeAll()
	s.emit(fragText, renderInline(ln.text))
}

func (s *blockState) quoteLine(level int, content string) {
	for len(s.quotes) < level {
		s.emit(fragBlock, "<blockquote>")
		s.quotes = s.push(s.quotes, "</blockquote>", 0)
	}
	for len(s.quotes) > level {
		s.popQuote()
	}

	if strings.TrimSpace(content) == "" {
		s.emit(fragBlank, "")
		return
	}
	s.emit(fragText, renderInline(content))
}

func (s *blockState) listItem(tag string, indent int, content string) {
	for len(s.lists) > 0 && s.currentIndent() > indent {
		s.popList()
	}
	if len(s.lists) == 0 || indent > s.currentIndent() {
		s.emit(fragBlock, "<"+tag+">")
		s.lists = s.push(s.lists, "</"+tag+">", indent)
	}
	s.emit(fragBlock, "<li>"+renderInline(content)+"</li>")
}

// currentIndent is the indent level of the innermost open list.
func (s *blockState) currentIndent() int {
	if len(s.lists) == 0 {
		return 0
	}
	return s.lists[len(s.lists)-1].indent
}

func (s *blockState) push(stack []stackEntry, closer string, indent int) []stackEntry {
	s.seq++
	return append(stack, stackEntry{closer: closer, indent: indent, seq: s.seq})
}

// popList closes the innermost list, first closing any quote opened
// inside it.
func (s *blockState) popList() {
	top := s.lists[len(s.lists)-1]
	for len(s.quotes) > 0 && s.quotes[len(s.quotes)-1].seq > top.seq {
		s.popQuote()
	}
	s.lists = s.lists[:len(s.lists)-1]
	s.emit(fragBlock, top.closer)
}

// popQuote closes the innermost quote, first closing any list opened
// inside it.
func (s *blockState) popQuote() {
	top := s.quotes[len(s.quotes)-1]
	for len(s.lists) > 0 && s.lists[len(s.lists)-1].seq > top.seq {
		s.popList()
	}
	s.quotes = s.quotes[:len(s.quotes)-1]
	s.emit(fragBlock, top.closer)
}

// closeAll drains both stacks, innermost first.
func (s *blockState) closeAll() {
	for len(s.lists) > 0 || len(s.quotes) > 0 {
		switch {
		case len(s.quotes) == 0:
			s.popList()
		case len(s.lists) == 0:
			s.popQuote()
		case s.lists[len(s.lists)-1].seq > s.quotes[len(s.quotes)-1].seq:
			s.popList()
		default:
			s.popQuote()
		}
	}
}

func (s *blockState) emit(kind fragmentKind, html string) {
	s.out = append(s.out, fragment{kind: kind, html: html})
}
