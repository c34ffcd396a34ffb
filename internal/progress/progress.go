// Package progress renders step counters for long-running inventory work.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/conn-castle/pkgmigrate/internal/messages"
)

// Reporter receives progress for one task at a time.
// Start announces a task with its total step count, Step advances it by one,
// and Done finishes it. A total of zero is valid.
type Reporter interface {
	Start(label string, total int)
	Step()
	Done()
}

// Nop discards all progress.
type Nop struct{}

// Start implements Reporter.
func (Nop) Start(string, int) {}

// Step implements Reporter.
func (Nop) Step() {}

// Done implements Reporter.
func (Nop) Done() {}

// OrNop returns rep, or Nop when rep is nil.
func OrNop(rep Reporter) Reporter {
	if rep == nil {
		return Nop{}
	}
	return rep
}

// Line renders progress as a single line.
// On an interactive terminal the line is redrawn in place whenever the
// percentage changes; otherwise one summary line is written per task.
type Line struct {
	out         io.Writer
	interactive bool

	mu      sync.Mutex
	label   string
	total   int
	current int
	percent int
}

// NewLine creates a Line writing to out.
func NewLine(out io.Writer, interactive bool) *Line {
	return &Line{out: out, interactive: interactive}
}

// Start implements Reporter.
func (l *Line) Start(label string, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.label = label
	l.total = total
	l.current = 0
	l.percent = -1
	if l.interactive {
		l.renderLocked()
	}
}

// Step implements Reporter.
func (l *Line) Step() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current < l.total {
		l.current++
	}
	if !l.interactive {
		return
	}
	if percent := percentOf(l.current, l.total); percent != l.percent {
		l.renderLocked()
	}
}

// Done implements Reporter.
func (l *Line) Done() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.interactive {
		l.renderLocked()
		_, _ = fmt.Fprintln(l.out)
		return
	}
	_, _ = fmt.Fprintf(l.out, messages.ProgressSummaryFmt, l.label, l.current, l.total)
}

func (l *Line) renderLocked() {
	l.percent = percentOf(l.current, l.total)
	_, _ = fmt.Fprint(l.out, "\r\x1b[2K")
	_, _ = fmt.Fprintf(l.out, messages.ProgressLineFmt, l.label, l.current, l.total, l.percent)
}

func percentOf(current int, total int) int {
	if total <= 0 {
		return 100
	}
	return current * 100 / total
}
