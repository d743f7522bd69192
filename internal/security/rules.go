// Package security screens raw content before it reaches any renderer.
//
// The filter is a signature blocklist, not a sandbox: it rejects content
// that looks like server-side code or carries active browser content, and
// relies on the renderers escaping everything else.
package security

import "regexp"

// Kind groups rules by what they look for.
type Kind int

const (
	KindCall        Kind = iota + 1 // server-side code tags and dangerous calls
	KindSuperglobal                 // request superglobal access
	KindInjection                   // tag-breaking and echo-of-input injection
	KindActive                      // active browser content
)

// String returns the lowercase kind name used in logs and listings.
func (k Kind) String() string {
	switch k {
	case KindCall:
		return "call"
	case KindSuperglobal:
		return "superglobal"
	case KindInjection:
		return "injection"
	case KindActive:
		return "active"
	default:
		return "unknown"
	}
}

// Rule is one named signature.
type Rule struct {
	Name    string
	Kind    Kind
	Pattern *regexp.Regexp
}

// rules run in this order; the first match rejects.
var rules = []Rule{
	{"php-open-tag", KindCall, regexp.MustCompile(`(?i)<\?php\s+\w+`)},
	{"php-short-echo", KindCall, regexp.MustCompile(`(?i)<\?=`)},
	{"exec-call", KindCall, regexp.MustCompile(`(?i)\b(eval|exec|system|shell_exec|passthru|call_user_func|create_function)\s*\(`)},
	{"file-call", KindCall, regexp.MustCompile(`(?i)\b(file_get_contents|file_put_contents|fopen|fwrite|include|require|include_once|require_once)\s*\(`)},
	{"superglobal-access", KindSuperglobal, regexp.MustCompile(`(?i)\$_[A-Z]+\[\s*['"]\w+['"]\s*\]`)},
	{"preg-eval-modifier", KindCall, regexp.MustCompile(`(?i)\bpreg_replace\s*\(.*/e\)`)},
	{"tag-reopen", KindInjection, regexp.MustCompile(`(?i)\?>\s*<\?php`)},
	{"echo-input", KindInjection, regexp.MustCompile(`(?i)<\?php.*?echo.*?\$_`)},
	{"print-input", KindInjection, regexp.MustCompile(`(?i)<\?php.*?print.*?\$_`)},
	{"script-tag", KindActive, regexp.MustCompile(`(?i)<script`)},
	{"javascript-url", KindActive, regexp.MustCompile(`(?i)javascript:`)},
}

// Rules returns a copy of the rule list in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Spans removed from markup before scanning: fenced blocks, inline code
// and lines indented by four or more spaces.
var (
	fencedSpan   = regexp.MustCompile("(?s)```.*?```")
	inlineSpan   = regexp.MustCompile("`[^`]*`")
	indentedLine = regexp.MustCompile(`(?m)^ {4,}.*$`)
)

// scanCopy returns content with code spans removed.
func scanCopy(content string) string {
	content = fencedSpan.ReplaceAllString(content, "")
	content = inlineSpan.ReplaceAllString(content, "")
	return indentedLine.ReplaceAllString(content, "")
}
