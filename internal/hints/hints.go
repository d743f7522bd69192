// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// userConfigMarker identifies the user config directory among searched paths.
const userConfigMarker = "go-mdview"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdview/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentTooLarge returns a hint for inputs over the size limit.
func ForContentTooLarge() string {
	return format("raise the limit with --max-size (0 = unlimited)")
}

// ForSecurityRejected returns a hint naming the rule that matched.
// Rule names are listed by 'mdview rules'.
func ForSecurityRejected(rule string) string {
	if rule == "" {
		return format("run 'mdview rules' to list the security rules")
	}
	return format("matched rule " + rule + "; run 'mdview rules' for details")
}

// ForDecodeFailed returns a hint for malformed JSON input.
func ForDecodeFailed() string {
	return format("validate the file as JSON or render it with --type text")
}

// ForUnknownType returns hints for unrecognized file types.
func ForUnknownType(valid []string) string {
	if len(valid) == 0 {
		return format("set the type explicitly with --type")
	}
	return formatHints([]string{
		"set the type explicitly with --type",
		"valid: " + strings.Join(valid, ", "),
	})
}

// ForStdinType returns a hint for stdin input without --type.
func ForStdinType() string {
	return format("stdin has no file name; pass --type markdown, json, text or remote")
}

// ForStyleNotFound returns hints for unknown page styles.
func ForStyleNotFound(builtin []string) string {
	return formatHints([]string{
		"built-in styles: " + strings.Join(builtin, ", "),
		"or put NAME.css in the --style-dir directory",
	})
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
