package search

import (
	"path/filepath"
	"strings"

	"github.com/kamusis/smartfind/internal/glob"
)

// flatSep stands in for "/" so that "*" in a full-path pattern also spans
// directory boundaries. NUL cannot occur in a path.
const flatSep = "\x00"

func flatten(s string) string {
	return strings.ReplaceAll(filepath.ToSlash(s), "/", flatSep)
}

// Excluder drops candidates whose full path or basename matches a glob.
type Excluder struct {
	paths []string
	names []string
}

// NewExcluder compiles path patterns (matched against the whole path, "*"
// crossing separators) and filename patterns (matched against the basename).
// Braces and backslashes in either are literal.
func NewExcluder(pathPatterns, namePatterns []string) *Excluder {
	e := &Excluder{
		paths: make([]string, 0, len(pathPatterns)),
		names: make([]string, 0, len(namePatterns)),
	}
	for _, p := range pathPatterns {
		if p != "" {
			e.paths = append(e.paths, strings.ReplaceAll(glob.Escape(p), "/", flatSep))
		}
	}
	for _, p := range namePatterns {
		if p != "" {
			e.names = append(e.names, glob.Escape(p))
		}
	}
	return e
}

// MatchPath reports whether path matches any full-path pattern.
func (e *Excluder) MatchPath(path string) bool {
	if len(e.paths) == 0 {
		return false
	}
	flat := flatten(path)
	for _, pattern := range e.paths {
		// a bad pattern matches nothing rather than breaking the search
		if glob.Match(pattern, flat) {
			return true
		}
	}
	return false
}

// MatchName reports whether the basename of path matches any filename pattern.
func (e *Excluder) MatchName(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range e.names {
		if glob.Match(pattern, name) {
			return true
		}
	}
	return false
}

// Excluded reports whether path should be dropped.
func (e *Excluder) Excluded(path string) bool {
	return e.MatchPath(path) || e.MatchName(path)
}

// Filter returns the paths that survive both rule sets, order preserved.
func (e *Excluder) Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if e.Excluded(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
