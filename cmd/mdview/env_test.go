package main

// Notes:
// - DefaultEnv: we check the production wiring of clock and streams.
// - newTestEnv is shared test infrastructure: buffered streams and a fixed
//   clock, so command output can be asserted without touching the terminal.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

// testEnv bundles an Environment with its captured streams.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an Environment reading stdin from the given string.
func newTestEnv(stdin string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixed },
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production environment wiring
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	t.Run("Now returns real time", func(t *testing.T) {
		before := time.Now()
		got := env.Now()
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("Now() = %v, should be between %v and %v", got, before, after)
		}
	})

	t.Run("streams are the process streams", func(t *testing.T) {
		if env.Stdin != os.Stdin {
			t.Error("Stdin should be os.Stdin")
		}
		if env.Stdout != os.Stdout {
			t.Error("Stdout should be os.Stdout")
		}
		if env.Stderr != os.Stderr {
			t.Error("Stderr should be os.Stderr")
		}
	})
}

// ---------------------------------------------------------------------------
// TestEnvironmentInjection - Injected dependencies are used
// ---------------------------------------------------------------------------

func TestEnvironmentInjection(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if !env.Now().Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Now() = %v, want fixed time", env.Now())
	}

	code := runMain(t.Context(), []string{"mdview", "version"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stdout.String(), "mdview") {
		t.Errorf("stdout = %q, want version line", env.stdout.String())
	}
	if env.stderr.Len() != 0 {
		t.Errorf("stderr should be empty, got %q", env.stderr.String())
	}
}
