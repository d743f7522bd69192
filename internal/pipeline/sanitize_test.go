package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:    "script removed",
			input:   `<p>hi</p><script>alert(1)</script>`,
			wantNot: []string{"<script", "alert(1)"},
		},
		{
			name:         "event handler removed",
			input:        `<img src="a.png" onerror="alert(1)" class="markdown-image">`,
			wantContains: []string{`class="markdown-image"`},
			wantNot:      []string{"onerror"},
		},
		{
			name:         "javascript href removed",
			input:        `<a href="javascript:alert(1)">x</a>`,
			wantNot:      []string{"javascript:"},
			wantContains: []string{"x"},
		},
		{
			name:         "code block markup kept",
			input:        `<pre class="code-block language-go"><div class="code-label">Go</div><code>x</code></pre>`,
			wantContains: []string{`<pre class="code-block language-go">`, `<div class="code-label">Go</div>`, "<code>x</code>"},
		},
		{
			name:         "external link keeps new tab and noreferrer",
			input:        `<a href="https://go.dev" target="_blank" rel="noopener noreferrer">Go</a>`,
			wantContains: []string{`href="https://go.dev"`, `target="_blank"`, "noreferrer"},
		},
	}

	s := NewSanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize() should contain %q\nGot:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("Sanitize() should NOT contain %q\nGot:\n%s", notWant, got)
				}
			}
		})
	}
}

// The built-in renderer's output is already within the policy, so the
// sanitizer keeps every structural tag.
func TestSanitizer_KeepsBuiltinMarkup(t *testing.T) {
	t.Parallel()

	html, err := NewBuiltinConverter(nil, nil).ToHTML(context.Background(),
		"# T\n\n- a\n  - b\n\n> q\n\n~~x~~ `c` **b** *i*\n\n---\n\n| A |\n|---|\n| 1 |\n\n```go\nx\n```")
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	got := NewSanitizer().Sanitize(html)
	for _, tag := range []string{"<h1>", "<ul>", "<li>", "<blockquote>", "<del>", `<code class="inline-code">`, "<strong>", "<em>", "<table", "<td>", `<pre class="code-block language-go">`} {
		if !strings.Contains(got, tag) {
			t.Errorf("sanitized output lost %q\nGot:\n%s", tag, got)
		}
	}
}
