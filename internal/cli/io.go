package cli

import (
	"fmt"
	"io"
)

// IO handles command output and deferred warnings.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a non-fatal warning. Warnings are printed to stderr after
// command output so they never interleave with results, and they do not
// change the exit code: a run that produced its document but noticed a
// gap still succeeded.
func (o *IO) Warn(detail string) {
	o.warnings = append(o.warnings, detail)
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish flushes warnings to stderr and returns the exit code. The
// warning list is reset so the menu can reuse one IO across commands.
func (o *IO) Finish() int {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	o.warnings = nil

	return 0
}
