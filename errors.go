package mdview

import (
	"errors"
	"strings"
)

// Sentinel errors for rendering.
var (
	ErrContentTooLarge  = errors.New("content too large")
	ErrSecurityRejected = errors.New("content rejected by security filter")
	ErrDecodeFailed     = errors.New("malformed JSON")
	ErrUnsupportedType  = errors.New("unsupported content type")
	ErrRenderFailed     = errors.New("rendering failed")

	// Option validation errors.
	ErrUnsupportedEngine = errors.New("unsupported markdown engine")
)

// RenderError describes a failed render. The Result returned alongside it
// holds the escaped error fragment shown to the user.
type RenderError struct {
	Kind   error  // one of the sentinel errors above
	Reason string // short detail, safe to show
	Rule   string // security rule name for ErrSecurityRejected
	Err    error  // underlying cause, if any
}

func (e *RenderError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Reason != "" {
		sb.WriteString(": " + e.Reason)
	}
	if e.Rule != "" {
		sb.WriteString(" (rule " + e.Rule + ")")
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *RenderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
