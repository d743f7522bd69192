package main

// Notes:
// - discoverFiles: we test single files, recursive directory walks, forced
//   types, unknown extensions and remote URLs. Output paths are checked for
//   stdout, directory and single-file targets.
// - resolveOutputPath: we test the path mapping rules in isolation.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-mdview"
)

// writeFiles creates files under dir, making parent directories as needed.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file to stdout", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"doc.md": "# Doc"})

		files, err := discoverFiles(filepath.Join(dir, "doc.md"), "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		if files[0].OutputPath != "" {
			t.Errorf("OutputPath = %q, want stdout", files[0].OutputPath)
		}
		if files[0].Type != mdview.TypeMarkdown {
			t.Errorf("Type = %v, want markdown", files[0].Type)
		}
	})

	t.Run("directory walk keeps structure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"a.md":          "# A",
			"data.json":     `{"a": 1}`,
			"sub/notes.txt": "notes",
			"sub/image.png": "binary",
			"README":        "skipped",
		})
		out := filepath.Join(t.TempDir(), "site")

		files, err := discoverFiles(dir, out, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []string
		for _, f := range files {
			rel, _ := filepath.Rel(out, f.OutputPath)
			got = append(got, filepath.ToSlash(rel))
		}
		slices.Sort(got)
		want := []string{"a.html", "data.html", "sub/notes.html"}
		if !slices.Equal(got, want) {
			t.Errorf("output paths = %v, want %v", got, want)
		}

		for _, f := range files {
			if strings.HasSuffix(f.InputPath, ".json") && f.Type != mdview.TypeJSON {
				t.Errorf("%s: Type = %v, want json", f.InputPath, f.Type)
			}
			if strings.HasSuffix(f.InputPath, ".txt") && f.Type != mdview.TypeText {
				t.Errorf("%s: Type = %v, want text", f.InputPath, f.Type)
			}
		}
	})

	t.Run("forced type applies to every file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"a.md": "x", "b.txt": "y"})
		forced := mdview.TypeText

		files, err := discoverFiles(dir, "", &forced)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, f := range files {
			if f.Type != mdview.TypeText {
				t.Errorf("%s: Type = %v, want text", f.InputPath, f.Type)
			}
		}
	})

	t.Run("forced type allows unknown extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"Makefile": "all:"})
		forced := mdview.TypeText

		files, err := discoverFiles(filepath.Join(dir, "Makefile"), "", &forced)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("got %d files, want 1", len(files))
		}
	})

	t.Run("unknown extension without type", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"page.html": "<p>"})

		_, err := discoverFiles(filepath.Join(dir, "page.html"), "", nil)
		if !errors.Is(err, mdview.ErrUnsupportedType) {
			t.Fatalf("error = %v, want ErrUnsupportedType", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint, got %q", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "nope.md"), "", nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("remote URL", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles("https://example.com/doc.md", "", nil)
		if !errors.Is(err, ErrRemoteInput) {
			t.Errorf("error = %v, want ErrRemoteInput", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path mapping
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"stdout", "docs/a.md", "", "", ""},
		{"explicit html file", "docs/a.md", "out/page.html", "", "out/page.html"},
		{"single file into dir", "docs/a.md", "out", "", filepath.Join("out", "a.html")},
		{"json into dir", "data/x.json", "out", "", filepath.Join("out", "x.html")},
		{"nested keeps relative path", filepath.Join("docs", "sub", "b.txt"), "out", "docs", filepath.Join("out", "sub", "b.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q",
					tt.input, tt.outputDir, tt.baseDir, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsRenderable - Extension filter
// ---------------------------------------------------------------------------

func TestIsRenderable(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]bool{
		"a.md":       true,
		"a.MD":       true,
		"a.markdown": true,
		"a.txt":      true,
		"a.json":     true,
		"a.html":     false,
		"a":          false,
	} {
		if got := isRenderable(path); got != want {
			t.Errorf("isRenderable(%q) = %v, want %v", path, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWithHint - Hint wrapping
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	if withHint(nil, "\n  hint: x") != nil {
		t.Error("withHint(nil) should be nil")
	}

	base := errors.New("boom")
	if got := withHint(base, ""); got != base {
		t.Errorf("withHint with empty hint = %v, want original error", got)
	}

	got := withHint(base, "\n  hint: try again")
	if !errors.Is(got, base) {
		t.Error("hinted error should wrap the original")
	}
	if got.Error() != "boom\n  hint: try again" {
		t.Errorf("Error() = %q", got.Error())
	}
}
