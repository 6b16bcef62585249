package discovery

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Expander turns one pattern into zero or more concrete paths.
type Expander interface {
	Expand(pattern string) []string
}

// ExpanderFunc adapts a plain function to the Expander interface.
type ExpanderFunc func(pattern string) []string

// Expand calls f(pattern).
func (f ExpanderFunc) Expand(pattern string) []string {
	return f(pattern)
}

// IdentityExpander returns every pattern unchanged. It stands in when glob
// expansion is disabled.
var IdentityExpander Expander = ExpanderFunc(func(pattern string) []string {
	return []string{pattern}
})

const globMeta = "*?[{"

type globExpander struct {
	logger *zap.Logger
}

// NewGlobExpander creates an Expander backed by doublestar, so `**` matches
// across directories. A glob that matches nothing expands to nothing; a
// pattern without glob syntax is returned as is so a missing file surfaces as
// a read error rather than vanishing.
func NewGlobExpander(logger *zap.Logger) Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &globExpander{logger: logger}
}

func (g *globExpander) Expand(pattern string) []string {
	if !strings.ContainsAny(pattern, globMeta) {
		return []string{pattern}
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		g.logger.Warn("invalid pattern", zap.String("pattern", pattern), zap.Error(err))
		return nil
	}
	sort.Strings(matches)
	return matches
}

// Files expands every pattern in order, flattens the results and keeps only
// the paths accepted by filter.
func Files(patterns []string, expander Expander, filter Filter) []string {
	files := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		for _, path := range expander.Expand(pattern) {
			if filter == nil || filter.Keep(path) {
				files = append(files, path)
			}
		}
	}
	return files
}
