// Package report implements the event reporter: a single append-only
// text stream of per-cycle stage-transition events.
package report

import (
	"bufio"
	"fmt"
	"io"
)

// Stage identifies one of the five reportable pipeline stage transitions.
type Stage string

// The stage names emitted on the event stream.
const (
	Fetched     Stage = "FETCHED"
	Dispatched  Stage = "DISPATCHED"
	Scheduled   Stage = "SCHEDULED"
	Executed    Stage = "EXECUTED"
	StateUpdate Stage = "STATE UPDATE"
)

// Reporter emits "<cycle>\t<STAGE>\t<tag>\n" lines to an injected writer,
// the way NewDefaultSyscallHandler(regFile, memory, os.Stdout, os.Stderr)
// threads an io.Writer collaborator into a stage instead of writing to
// package-global stdout.
type Reporter struct {
	w *bufio.Writer
}

// New wraps w in a buffered Reporter. Flush must be called once the caller
// is done emitting events, to preserve line ordering under termination.
func New(w io.Writer) *Reporter {
	return &Reporter{w: bufio.NewWriter(w)}
}

// Emit writes one event line.
func (r *Reporter) Emit(cycle uint64, stage Stage, tag uint64) {
	fmt.Fprintf(r.w, "%d\t%s\t%d\n", cycle, stage, tag)
}

// Flush pushes any buffered output to the underlying writer.
func (r *Reporter) Flush() error {
	return r.w.Flush()
}
