package security

import (
	"io"
	"log/slog"
	"unicode/utf8"
)

// Content tells the filter how to scan.
type Content int

const (
	// ContentText is plain text. It is never signature-scanned; only the
	// active-content rules apply, to the whole input.
	ContentText Content = iota
	// ContentMarkup is Markdown, JSON or sniffed remote content. Every rule
	// applies, to a copy with code spans removed.
	ContentMarkup
)

// Reason explains a rejection.
type Reason int

const (
	ReasonNone          Reason = iota // allowed
	ReasonTooLarge                    // over the size limit
	ReasonDangerousCode               // server-side code signature matched
	ReasonActiveContent               // script tag or javascript: URL
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "allowed"
	case ReasonTooLarge:
		return "content too large"
	case ReasonDangerousCode:
		return "potentially dangerous code detected"
	case ReasonActiveContent:
		return "content type not allowed"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of one check.
type Verdict struct {
	Allowed bool
	Reason  Reason
	Rule    string // name of the matching rule, empty unless a rule matched
}

// maxExcerpt bounds the matched text written to logs.
const maxExcerpt = 100

// Filter applies the rule list. It holds no per-call state.
type Filter struct {
	logger *slog.Logger
}

// NewFilter creates a Filter. A nil logger discards rejection logs.
func NewFilter(logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Filter{logger: logger}
}

// Check screens content. The size limit is checked first and applies to
// every kind of content; maxSize <= 0 disables it.
func (f *Filter) Check(content []byte, kind Content, maxSize int) Verdict {
	if maxSize > 0 && len(content) > maxSize {
		f.logger.Warn("content rejected",
			slog.String("reason", ReasonTooLarge.String()),
			slog.Int("size", len(content)),
			slog.Int("limit", maxSize))
		return Verdict{Reason: ReasonTooLarge}
	}

	text := string(content)
	if kind != ContentText {
		text = scanCopy(text)
	}

	for _, r := range rules {
		if kind == ContentText && r.Kind != KindActive {
			continue
		}
		loc := r.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}

		reason := ReasonDangerousCode
		if r.Kind == KindActive {
			reason = ReasonActiveContent
		}
		f.logger.Warn("content rejected",
			slog.String("reason", reason.String()),
			slog.String("rule", r.Name),
			slog.String("kind", r.Kind.String()),
			slog.String("excerpt", excerpt(text[loc[0]:])))
		return Verdict{Reason: reason, Rule: r.Name}
	}

	return Verdict{Allowed: true}
}

// excerpt truncates s to at most maxExcerpt bytes without splitting a rune.
func excerpt(s string) string {
	if len(s) <= maxExcerpt {
		return s
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
