package pipeline

import "github.com/microcosm-cc/bluemonday"

// Sanitizer filters finished HTML through an allowlist policy.
// The renderers already escape all input; this is a second line.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy,
// extended with the class attributes and elements this package emits.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div", "pre", "code", "del", "blockquote", "hr")
	p.AllowAttrs("class").Globally()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return &Sanitizer{policy: p}
}

// Sanitize returns html with everything outside the policy removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
