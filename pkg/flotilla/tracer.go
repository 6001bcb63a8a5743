package flotilla

import (
	"fmt"
	"io"
)

// SearchPosition describes where the search stood when a branch was
// abandoned.
type SearchPosition interface {
	// Assignment returns the partial assignment in force at the
	// position.
	Assignment() Assignment
	// Wipeout returns the variable whose domain propagation
	// emptied.
	Wipeout() Identifier
}

// Tracer is notified each time propagation wipes out a domain and
// the search backtracks.
type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nAssignment:\n")
	for id, value := range p.Assignment() {
		fmt.Fprintf(t.Writer, "- %s=%s\n", id, value)
	}
	fmt.Fprintf(t.Writer, "Wipeout:\n- %s\n", p.Wipeout())
}
