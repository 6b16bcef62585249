package runner

import "context"

// Exit statuses of a run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitFunc terminates the process with the given status.
type ExitFunc func(status int)

// Output is the destination reports are written to.
type Output interface {
	// Interactive reports whether the destination is a terminal.
	Interactive() bool
	// Drain blocks until everything written so far has reached the
	// destination, or ctx is done.
	Drain(ctx context.Context) error
}

type outcome int

const (
	outcomeLinted outcome = iota
	outcomeReadFailed
	outcomeLintFault
)

func (o outcome) String() string {
	switch o {
	case outcomeLinted:
		return "linted"
	case outcomeReadFailed:
		return "read_failed"
	case outcomeLintFault:
		return "lint_fault"
	default:
		return "unknown"
	}
}

// completion is sent once per file when its pipeline finishes.
type completion struct {
	path string
	kind outcome
	ok   bool
}

// runState is owned by the coordinator goroutine.
type runState struct {
	remaining int
	allOK     bool
}

// fold records one completion. Read failures count toward completion but
// leave allOK untouched; lint faults fail the run.
func (s *runState) fold(c completion) {
	s.remaining--
	switch c.kind {
	case outcomeLinted:
		s.allOK = s.allOK && c.ok
	case outcomeLintFault:
		s.allOK = false
	}
}

func (s *runState) status() int {
	if s.allOK {
		return ExitSuccess
	}
	return ExitFailure
}
