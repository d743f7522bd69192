package pipeline

// FormatText escapes plain text and converts newlines to line breaks.
func FormatText(content string) string {
	return `<div class="text-content"><p>` + nl2br(content) + `</p></div>`
}

// FormatError renders a user-visible error message.
func FormatError(message string) string {
	return `<div class="error">` + Escape(message) + `</div>`
}
