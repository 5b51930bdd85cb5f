package cmd

import (
	"fmt"
	"io"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Human-facing commands (init, doctor, open) use these so icons and
// indentation stay consistent. Search output never goes through them.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change

// printSection prints a top-level section header, e.g. "=== Doctor ===".
func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(w io.Writer, name, msg string) { printLine(w, "✓", name, msg) }

// printErr prints an error line; callers pass stderr.
func printErr(w io.Writer, name, msg string) { printLine(w, "✗", name, msg) }

func printWarn(w io.Writer, name, msg string) { printLine(w, "⚠", name, msg) }

func printSkip(w io.Writer, name, msg string) { printLine(w, "○", name, msg) }

func printMiss(w io.Writer, name, msg string) { printLine(w, "-", name, msg) }

func printInfo(w io.Writer, name, msg string) { printLine(w, "~", name, msg) }
