package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestIsInteractive_UsesBothDescriptors(t *testing.T) {
	orig := isTerminalFd
	t.Cleanup(func() { isTerminalFd = orig })

	var seen []int
	isTerminalFd = func(fd int) bool {
		seen = append(seen, fd)
		return true
	}
	if !IsInteractive() {
		t.Fatal("expected interactive")
	}
	if len(seen) != 2 {
		t.Fatalf("expected two descriptor checks, got %v", seen)
	}

	isTerminalFd = func(int) bool { return false }
	if IsInteractive() {
		t.Fatal("expected non-interactive")
	}
}

func TestIsTerminalWriter(t *testing.T) {
	orig := isTerminalFd
	t.Cleanup(func() { isTerminalFd = orig })
	isTerminalFd = func(int) bool { return true }

	if IsTerminalWriter(&bytes.Buffer{}) {
		t.Fatal("buffer is never a terminal")
	}
	if !IsTerminalWriter(os.Stderr) {
		t.Fatal("expected file writer to defer to descriptor check")
	}
}
