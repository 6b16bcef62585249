package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/eugenenazirov/lintrunner/internal/output"
)

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (e *exitRecorder) exit(status int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, status)
}

type harness struct {
	out    bytes.Buffer
	errOut bytes.Buffer
	exits  exitRecorder
}

func (h *harness) run(args ...string) int {
	return run(args, streams{out: output.NewStream(&h.out, false), errOut: &h.errOut}, h.exits.exit)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LINTRUNNER_LOG_LEVEL", "error")
	t.Setenv("LINTRUNNER_EXCLUDE_MARKERS", "")
	t.Setenv("LINTRUNNER_DRAIN_TIMEOUT", "")
	t.Setenv("LINTRUNNER_GLOB", "")
}

func TestRunWithoutPatternsPrintsUsage(t *testing.T) {
	quietEnv(t)

	var h harness
	if status := h.run(); status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if len(h.exits.codes) != 0 {
		t.Fatalf("expected runner not to start, got exits %v", h.exits.codes)
	}

	msg := h.errOut.String()
	for _, want := range []string{"No files specified.", "Usage: lintrunner", "[--json]", "[--white]", "[--] <pattern>..."} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in usage output, got %q", want, msg)
		}
	}
	if strings.Contains(msg, "[--help]") {
		t.Fatalf("help flag should not be listed: %q", msg)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	quietEnv(t)

	var h harness
	if status := h.run("--bogus", "a.js"); status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if !strings.Contains(h.errOut.String(), "Usage: lintrunner") {
		t.Fatalf("expected usage, got %q", h.errOut.String())
	}
}

func TestRunHelp(t *testing.T) {
	quietEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "alone", args: []string{"--help"}},
		{name: "with patterns", args: []string{"--help", "a.js"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var h harness
			if status := h.run(tc.args...); status != 0 {
				t.Fatalf("expected status 0, got %d", status)
			}
			if len(h.exits.codes) != 0 {
				t.Fatalf("expected runner not to start, got exits %v", h.exits.codes)
			}
			if h.out.Len() != 0 {
				t.Fatalf("expected no report output, got %q", h.out.String())
			}
			msg := h.errOut.String()
			for _, want := range []string{"lintrunner", "--drain-timeout", "--json"} {
				if !strings.Contains(msg, want) {
					t.Fatalf("expected %q in help output, got %q", want, msg)
				}
			}
		})
	}
}

func TestRunAcceptsDeprecatedFlags(t *testing.T) {
	quietEnv(t)

	dir := writeTree(t, map[string]string{"good.js": "var a = 1;\n"})

	var h harness
	if status := h.run("--es5", "--windows", "--anon", filepath.Join(dir, "good.js")); status != 0 {
		t.Fatalf("expected status 0, got %d (stderr %q)", status, h.errOut.String())
	}

	var usage harness
	usage.run()
	if msg := usage.errOut.String(); strings.Contains(msg, "[--es5]") || strings.Contains(msg, "[--windows]") {
		t.Fatalf("deprecated flags should not be listed in usage: %q", msg)
	}
}

func TestRunVersion(t *testing.T) {
	quietEnv(t)

	var h harness
	if status := h.run("--version"); status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}
	if !strings.HasPrefix(h.out.String(), "lintrunner version: dev  lint edition ") {
		t.Fatalf("unexpected version output %q", h.out.String())
	}
}

func TestRunLintsFiles(t *testing.T) {
	quietEnv(t)

	dir := writeTree(t, map[string]string{
		"src/good.js":              "var a = 1;\n",
		"src/bad.js":               "if (a == b) {}\n",
		"src/node_modules/skip.js": "broken(\n",
	})

	var h harness
	status := h.run("--json", filepath.Join(dir, "src", "**", "*.js"))
	if status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if len(h.exits.codes) != 1 || h.exits.codes[0] != 1 {
		t.Fatalf("expected single exit with 1, got %v", h.exits.codes)
	}

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %q", h.out.String())
	}
	if strings.Contains(h.out.String(), "skip.js") {
		t.Fatalf("vendored file should be skipped: %q", h.out.String())
	}
}

func TestRunLintFlagsReachLinter(t *testing.T) {
	quietEnv(t)

	dir := writeTree(t, map[string]string{"a.js": "if (a == b) {}\n"})

	var h harness
	if status := h.run("--eqeq", "--terse", filepath.Join(dir, "a.js")); status != 0 {
		t.Fatalf("expected status 0 with --eqeq, got %d (%q)", status, h.out.String())
	}
	if h.out.Len() != 0 {
		t.Fatalf("expected no terse output for passing file, got %q", h.out.String())
	}
}

func TestRunUsesDiscoveredConfig(t *testing.T) {
	quietEnv(t)

	dir := writeTree(t, map[string]string{
		".lintrunner.yaml": "json: true\nlint:\n  maxlen: 5\n",
		"a.js":             "var abcdef;\n",
	})
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	var h harness
	if status := h.run("a.js"); status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if !strings.HasPrefix(h.out.String(), `["a.js",[`) || !strings.Contains(h.out.String(), "Line too long.") {
		t.Fatalf("expected JSON report from discovered config, got %q", h.out.String())
	}
}

func TestRunConfigError(t *testing.T) {
	quietEnv(t)

	var h harness
	if status := h.run("--drain-timeout=-1s", "a.js"); status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if !strings.Contains(h.errOut.String(), "failed to load configuration") {
		t.Fatalf("expected configuration error, got %q", h.errOut.String())
	}
	if len(h.exits.codes) != 0 {
		t.Fatalf("expected no file work, got exits %v", h.exits.codes)
	}
}
