// Package term answers basic questions about the render target: is it a
// terminal, and how wide is it.
package term

import (
	"io"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTTY reports whether the writer is backed by a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width in columns for the given writer, or 0
// if the writer is not a terminal or its size cannot be determined.
func Width(w io.Writer) int {
	f, ok := w.(fdWriter)
	if !ok {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return 0
	}
	return cols
}
