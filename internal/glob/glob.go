// Package glob matches shell-style exclusion patterns with doublestar.
// Only *, ? and [...] are special; braces and backslashes are literal.
package glob

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var escaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// Escape quotes the characters doublestar treats as special but a shell
// glob does not.
func Escape(pattern string) string {
	return escaper.Replace(pattern)
}

// Valid reports whether pattern is well formed.
func Valid(pattern string) bool {
	return doublestar.ValidatePattern(Escape(pattern))
}

// Match reports whether name matches an already escaped pattern. A bad
// pattern matches nothing.
func Match(escaped, name string) bool {
	ok, err := doublestar.Match(escaped, name)
	return err == nil && ok
}
