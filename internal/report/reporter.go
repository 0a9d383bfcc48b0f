// Package report provides the output reporting capability used by the core
// packages. Core code never writes to the console directly; it receives a
// Reporter so it can run headless in tests.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives human-readable progress from long-running operations.
type Reporter interface {
	// Line prints a single informational message.
	Line(format string, args ...any)
	// Warn prints a non-fatal problem.
	Warn(format string, args ...any)
	// Tick advances an overall progress indicator by one unit.
	Tick(done, total int)
}

// Console is a Reporter writing colored output to a writer.
type Console struct {
	out   io.Writer
	quiet bool
}

// NewConsole creates a console reporter. With quiet set, Line and Tick are
// suppressed; warnings are still printed.
func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{out: out, quiet: quiet}
}

//nolint:errcheck // writing to the console; errors are not recoverable
func (c *Console) Line(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, format+"\n", args...)
}

//nolint:errcheck // writing to the console; errors are not recoverable
func (c *Console) Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(c.out, format+"\n", args...)
}

//nolint:errcheck // writing to the console; errors are not recoverable
func (c *Console) Tick(done, total int) {
	if c.quiet {
		return
	}
	color.New(color.FgCyan).Fprintf(c.out, "  [%d/%d]\r", done, total)
	if done == total {
		fmt.Fprintln(c.out)
	}
}

// Nop discards everything. Used by tests and by callers that asked for a
// fully silent run.
type Nop struct{}

func (Nop) Line(string, ...any) {}
func (Nop) Warn(string, ...any) {}
func (Nop) Tick(int, int)       {}

// FormatSize renders a byte count as a human-readable string.
func FormatSize(n float64) string {
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if n < 1024 {
			return fmt.Sprintf("%.2f %s", n, unit)
		}
		n /= 1024
	}
	return fmt.Sprintf("%.2f PB", n)
}
