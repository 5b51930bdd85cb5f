package index

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kamusis/smartfind/internal/search"
)

// Lines serves a fixed candidate list, such as paths piped in from another
// lister, keeping only those inside the requested directories.
type Lines []string

// ReadLines reads newline-delimited paths from r.
func ReadLines(r io.Reader) (Lines, error) {
	var out Lines
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read candidate list: %w", err)
	}
	return out, nil
}

// Query ignores the expression; the list is assumed to already match.
func (l Lines) Query(ctx context.Context, _ search.IndexQuery, dirs []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(l))
	for _, p := range l {
		if inAny(strings.TrimSpace(p), dirs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func inAny(p string, dirs []string) bool {
	if p == "" {
		return false
	}
	p = filepath.Clean(p)
	for _, d := range dirs {
		d = filepath.Clean(d)
		if d == string(filepath.Separator) && filepath.IsAbs(p) {
			return true
		}
		if p == d || strings.HasPrefix(p, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
