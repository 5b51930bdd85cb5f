package cmd

import (
	"io"
	"log/slog"
)

// newLogger returns a stderr text logger; --debug lowers the level to Debug.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
