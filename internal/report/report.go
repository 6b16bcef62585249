package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/eugenenazirov/lintrunner/internal/lint"
)

// Reporter emits one report per file.
type Reporter interface {
	Report(path string, verdict lint.Verdict) error
	ReadError(path string, err error) error
	Fault(path string, err error) error
}

// writer serializes whole-report writes to out and problem lines to errOut.
type writer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func (w *writer) write(dst io.Writer, p []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := dst.Write(p)
	return err
}

func (w *writer) ReadError(path string, err error) error {
	return w.write(w.errOut, []byte(fmt.Sprintf("%s: read failed: %v\n", path, err)))
}

func (w *writer) Fault(path string, err error) error {
	return w.write(w.errOut, []byte(fmt.Sprintf("%s: lint failed: %v\n", path, err)))
}

// JSONReporter writes one `["path",[diagnostics...]]` line per file.
type JSONReporter struct {
	writer
}

// NewJSON creates a JSONReporter. Read errors and faults go to errOut.
func NewJSON(out, errOut io.Writer) *JSONReporter {
	return &JSONReporter{writer: writer{out: out, errOut: errOut}}
}

// Report implements Reporter.
func (r *JSONReporter) Report(path string, verdict lint.Verdict) error {
	diags := verdict.Errors
	if diags == nil {
		diags = []lint.Diagnostic{}
	}

	line, err := json.Marshal([]any{path, diags})
	if err != nil {
		return fmt.Errorf("encode report for %s: %w", path, err)
	}
	return r.write(r.out, append(line, '\n'))
}

// TextReporter writes a human-readable report.
type TextReporter struct {
	writer
	terse bool
}

// NewText creates a TextReporter. Terse mode prints one `path:line:col: reason`
// line per diagnostic and nothing for passing files.
func NewText(out, errOut io.Writer, terse bool) *TextReporter {
	return &TextReporter{writer: writer{out: out, errOut: errOut}, terse: terse}
}

// Report implements Reporter.
func (r *TextReporter) Report(path string, verdict lint.Verdict) error {
	var buf bytes.Buffer

	if r.terse {
		for _, d := range verdict.Errors {
			fmt.Fprintf(&buf, "%s:%d:%d: %s\n", path, d.Line, d.Character, d.Reason)
		}
	} else {
		r.renderFull(&buf, path, verdict)
	}

	if buf.Len() == 0 {
		return nil
	}
	return r.write(r.out, buf.Bytes())
}

func (r *TextReporter) renderFull(buf *bytes.Buffer, path string, verdict lint.Verdict) {
	if verdict.OK {
		fmt.Fprintf(buf, "%s is OK.\n", path)
		return
	}

	fmt.Fprintf(buf, "\n%s\n", path)
	for i, d := range verdict.Errors {
		fmt.Fprintf(buf, " #%d %s\n", i+1, d.Reason)
		fmt.Fprintf(buf, "    %s // Line %d, Pos %d\n", strings.TrimSpace(d.Evidence), d.Line, d.Character)
	}
}
