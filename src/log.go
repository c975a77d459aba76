package am433

/*------------------------------------------------------------------
 *
 * Purpose:	Verbose decoder tracing.
 *
 * Description:	The reference decode.c gates every debug(...) call on
 *		a single global `verbose` int and writes to stderr with
 *		vfprintf. This repo keeps the "single process-wide sink
 *		governed by a boolean" shape (spec.md 9) but models it as
 *		an injected Tracer rather than ambient global state, so a
 *		library caller can supply its own sink. The CLI wires it
 *		to a github.com/charmbracelet/log logger when -v is given.
 *
 *------------------------------------------------------------------*/

import (
	"github.com/charmbracelet/log"
)

// Tracer receives one debug line per call. Decoders call it
// unconditionally; a no-op Tracer costs one interface call.
type Tracer interface {
	Tracef(format string, args ...any)
}

// noopTracer discards everything. Used when verbose tracing is off.
type noopTracer struct{}

func (noopTracer) Tracef(string, ...any) {}

// NoTracer is the default, silent Tracer.
var NoTracer Tracer = noopTracer{}

// charmTracer adapts a *log.Logger to Tracer.
type charmTracer struct {
	logger *log.Logger
}

func (t *charmTracer) Tracef(format string, args ...any) {
	t.logger.Debugf(format, args...)
}

// NewCharmTracer builds a Tracer backed by charmbracelet/log, writing
// structured debug lines to the given logger (typically one
// configured to write to os.Stderr with ReportTimestamp disabled, to
// match the reference's terse one-line-per-call debug output).
func NewCharmTracer(logger *log.Logger) Tracer {
	return &charmTracer{logger: logger}
}
