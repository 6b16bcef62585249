// Package discovery turns user-supplied path patterns into the ordered list
// of files a run will lint: each pattern is expanded, the results are
// flattened in input order and vendored-dependency paths are dropped.
package discovery
