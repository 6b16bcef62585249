// Package report renders lint verdicts. Each report is rendered in full and
// written with a single call, so reports from concurrent files never
// interleave.
package report
