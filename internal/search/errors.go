package search

import "errors"

var (
	// ErrNoDirectories is reported when none of the include directories exist.
	ErrNoDirectories = errors.New("no include directory exists")

	// ErrProviderRequired is reported when Search is called without an index provider.
	ErrProviderRequired = errors.New("index provider required")
)
