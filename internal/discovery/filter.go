package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultMarker is the vendored-dependency directory excluded by default.
const DefaultMarker = "node_modules"

// Filter decides whether a discovered path is linted.
type Filter interface {
	Keep(path string) bool
}

// PathFilter drops paths containing any marker substring or matching any
// exclude glob. It is immutable after construction.
type PathFilter struct {
	markers  []string
	excludes []glob.Glob
}

// NewPathFilter compiles the exclude globs. Globs are matched against the
// slash-separated form of the path.
func NewPathFilter(markers, excludes []string) (*PathFilter, error) {
	compiled := make([]glob.Glob, 0, len(excludes))
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude %q: %w", pattern, err)
		}
		compiled = append(compiled, g)
	}

	kept := make([]string, 0, len(markers))
	for _, marker := range markers {
		if marker != "" {
			kept = append(kept, marker)
		}
	}

	return &PathFilter{markers: kept, excludes: compiled}, nil
}

// Keep reports whether path should be linted.
func (f *PathFilter) Keep(path string) bool {
	for _, marker := range f.markers {
		if strings.Contains(path, marker) {
			return false
		}
	}

	slashed := filepath.ToSlash(path)
	for _, g := range f.excludes {
		if g.Match(slashed) {
			return false
		}
	}
	return true
}
