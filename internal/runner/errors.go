package runner

import "errors"

var (
	// ErrNoPatterns is returned when a run is started without any pattern.
	ErrNoPatterns = errors.New("no files specified")
	// ErrLintPanic wraps a panic raised by the lint engine for one file.
	ErrLintPanic = errors.New("lint engine panicked")
)
