package application

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/lintrunner/internal/config"
	"github.com/eugenenazirov/lintrunner/internal/lint"
	"github.com/eugenenazirov/lintrunner/internal/loader"
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

func baseTestConfig() config.Config {
	return config.Config{
		Glob:           false,
		ExcludeMarkers: []string{"node_modules"},
		LogLevel:       "error",
		Lint:           lint.Options{Flags: map[string]bool{}},
	}
}

func newTestApp(t *testing.T, cfg config.Config, files map[string]string) (*App, *bytes.Buffer, *bytes.Buffer, *exitRecorder) {
	t.Helper()

	var out, errOut bytes.Buffer
	exits := &exitRecorder{}
	app, err := New(cfg, zaptest.NewLogger(t),
		WithStreams(output.NewStream(&out, false), &errOut),
		WithSource(loader.NewMemorySource(files)),
		WithExitFunc(exits.exit),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return app, &out, &errOut, exits
}

func TestRunTextReport(t *testing.T) {
	files := map[string]string{
		"good.js":             "var a = 1;\n",
		"bad.js":              "var a = 1; \n",
		"node_modules/dep.js": "broken(\n",
	}
	app, out, errOut, exits := newTestApp(t, baseTestConfig(), files)

	status, err := app.Run(context.Background(), []string{"good.js", "bad.js", "node_modules/dep.js", "missing.js"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if status != 1 || len(exits.codes) != 1 || exits.codes[0] != 1 {
		t.Fatalf("expected one failing exit, got status %d exits %v", status, exits.codes)
	}
	if !strings.Contains(out.String(), "good.js is OK.") {
		t.Fatalf("expected passing report, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Unexpected trailing space.") {
		t.Fatalf("expected failing report, got %q", out.String())
	}
	if strings.Contains(out.String(), "dep.js") {
		t.Fatalf("expected vendored file to be skipped, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "missing.js: read failed") {
		t.Fatalf("expected read failure on error stream, got %q", errOut.String())
	}
}

func TestRunJSONReportWithOptions(t *testing.T) {
	cfg := baseTestConfig()
	cfg.JSON = true
	cfg.Lint.Flags["white"] = true

	app, out, _, _ := newTestApp(t, cfg, map[string]string{"a.js": "var a = 1; \n"})

	status, err := app.Run(context.Background(), []string{"a.js"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if status != 0 {
		t.Fatalf("expected success with white flag, got %d", status)
	}
	if got := strings.TrimSpace(out.String()); got != `["a.js",[]]` {
		t.Fatalf("unexpected JSON output %q", got)
	}
}

func TestNewReturnsErrorForInvalidExclude(t *testing.T) {
	cfg := baseTestConfig()
	cfg.Exclude = []string{"[oops"}

	if _, err := New(cfg, zaptest.NewLogger(t), WithStreams(output.NewStream(&bytes.Buffer{}, true), &bytes.Buffer{})); err == nil {
		t.Fatalf("expected error for invalid exclude pattern")
	}
}

func TestVersion(t *testing.T) {
	app, _, _, _ := newTestApp(t, baseTestConfig(), nil)

	got := app.Version("1.2.3")
	want := "lintrunner version: 1.2.3  lint edition " + lint.DefaultEdition
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
