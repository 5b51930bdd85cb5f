package index

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/kamusis/smartfind/internal/search"
)

// DefaultWaitDelay bounds how long Query waits for output pipes to close
// after the tool has been killed.
const DefaultWaitDelay = 250 * time.Millisecond

// Mdfind queries the Spotlight index through the mdfind command line tool,
// or any tool that accepts the same "-onlyin <dir> ... <expr>" arguments and
// prints one path per line.
type Mdfind struct {
	tool      string
	waitDelay time.Duration
	logger    *slog.Logger
}

// NewMdfind returns a provider that runs tool. A nil logger discards.
func NewMdfind(tool string, logger *slog.Logger) *Mdfind {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mdfind{tool: tool, waitDelay: DefaultWaitDelay, logger: logger}
}

// Tool returns the configured executable name or path.
func (m *Mdfind) Tool() string {
	return m.tool
}

// Args builds the argument list: one -onlyin per directory, then the expression.
func (m *Mdfind) Args(q search.IndexQuery, dirs []string) []string {
	args := make([]string, 0, 2*len(dirs)+1)
	for _, d := range dirs {
		args = append(args, "-onlyin", d)
	}
	return append(args, q.Expression)
}

// Query runs the tool once. The process is killed when ctx ends; a deadline
// is reported as ErrTimeout and a non-zero exit as ErrToolFailed.
func (m *Mdfind) Query(ctx context.Context, q search.IndexQuery, dirs []string) ([]string, error) {
	path, err := exec.LookPath(m.tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolMissing, m.tool, err)
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, path, m.Args(q, dirs)...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = m.waitDelay
	configureProcess(c)

	m.logger.Debug("running index tool", "tool", path, "args", c.Args[1:])
	err = c.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
		}
		return nil, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit status %d: %s", ErrToolFailed, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", ErrToolFailed, err)
	}
	if stderr.Len() > 0 {
		m.logger.Debug("index tool stderr", "stderr", strings.TrimSpace(stderr.String()))
	}
	return SplitLines(stdout.Bytes()), nil
}

// SplitLines splits tool output into lines, dropping the trailing newline.
func SplitLines(b []byte) []string {
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
