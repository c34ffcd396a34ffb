// Package terminal provides terminal detection utilities.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

var isTerminalFd = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return isTerminalFd(int(os.Stdin.Fd())) && isTerminalFd(int(os.Stdout.Fd()))
}

// IsTerminalWriter reports whether w writes to a terminal. Writers that are
// not files, such as buffers in tests, never are.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminalFd(int(f.Fd()))
}
