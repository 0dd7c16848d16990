// Package output provides adapters for writing user-facing messages.
package output

import (
	"fmt"
	"io"
	"os"
)

// Reporter implements domain.Reporter. Errors and warnings are prefixed with
// the program basename and written to standard error; notices go to standard
// output without decoration beyond the prefix.
type Reporter struct {
	prog string
	out  io.Writer
	err  io.Writer
}

// NewReporter creates a Reporter for the given program basename that writes
// to the process streams.
func NewReporter(prog string) *Reporter {
	return &Reporter{prog: prog, out: os.Stdout, err: os.Stderr}
}

// NewReporterWithStreams creates a Reporter with custom output destinations.
// This is useful for testing.
func NewReporterWithStreams(prog string, out, err io.Writer) *Reporter {
	return &Reporter{prog: prog, out: out, err: err}
}

// Error writes "<prog>: error: <msg>" to standard error.
func (r *Reporter) Error(msg string) error {
	_, err := fmt.Fprintf(r.err, "%s: error: %s\n", r.prog, msg)
	return err
}

// Warning writes "<prog>: warning: <msg>" to standard error.
func (r *Reporter) Warning(msg string) error {
	_, err := fmt.Fprintf(r.err, "%s: warning: %s\n", r.prog, msg)
	return err
}

// Notice writes "<prog>: <msg>" to standard output. Notices report
// informational outcomes of successful runs, such as an empty diff.
func (r *Reporter) Notice(msg string) error {
	_, err := fmt.Fprintf(r.out, "%s: %s\n", r.prog, msg)
	return err
}

// Usage writes the rendered usage text to standard error. Usage accompanies
// parse and validation failures; explicit help requests render through the
// command framework to standard output instead.
func (r *Reporter) Usage(usage string) error {
	_, err := fmt.Fprint(r.err, usage)
	return err
}
