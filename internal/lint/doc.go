// Package lint defines the contract between the batch runner and a lint
// engine, and ships a small rule-based engine used by default. The runner
// treats Options as opaque and only inspects Verdict.OK.
package lint
