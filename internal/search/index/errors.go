package index

import "errors"

var (
	// ErrTimeout indicates the index tool did not finish before the deadline.
	ErrTimeout = errors.New("index tool timed out")

	// ErrToolMissing indicates the index tool could not be found on PATH.
	ErrToolMissing = errors.New("index tool not found")

	// ErrToolFailed indicates the index tool exited non-zero.
	ErrToolFailed = errors.New("index tool failed")
)
