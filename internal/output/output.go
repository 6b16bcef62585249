// Package output wraps the destination that lint reports are written to.
// Terminal destinations are written straight through; anything else is
// buffered and must be drained before the process exits.
package output

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Stream is a report destination that is safe for concurrent writers.
type Stream struct {
	mu          sync.Mutex
	w           io.Writer
	buf         *bufio.Writer
	interactive bool
}

// New wraps f, detecting whether it is attached to a terminal.
func New(f *os.File) *Stream {
	return NewStream(f, isTerminal(f.Fd()))
}

// NewStream wraps w. Non-interactive streams are buffered.
func NewStream(w io.Writer, interactive bool) *Stream {
	s := &Stream{w: w, interactive: interactive}
	if !interactive {
		s.buf = bufio.NewWriter(w)
	}
	return s
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil {
		return s.w.Write(p)
	}
	return s.buf.Write(p)
}

// Interactive reports whether the destination is a terminal.
func (s *Stream) Interactive() bool {
	return s.interactive
}

// Drain flushes everything written so far to the destination. It returns
// once the flush completes or ctx is done, whichever comes first.
func (s *Stream) Drain(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.buf == nil {
			done <- nil
			return
		}
		done <- s.buf.Flush()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
