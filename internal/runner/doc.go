// Package runner orchestrates a batch lint run: it expands patterns into
// files, loads and lints every file concurrently, folds the verdicts into a
// single status and terminates the process exactly once, after all reports
// were written and, for non-terminal output, drained.
//
// Every file goroutine sends exactly one completion to the coordinator. The
// coordinator is the only owner of the run state, so the decrement of the
// outstanding count and the check for zero happen as one sequential step.
package runner
