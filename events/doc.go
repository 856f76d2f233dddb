// Package events broadcasts structural change notifications from a Tree —
// cluster allocations/frees and min promotions — to any number of
// subscribers, the same way the teacher package's textfile loader broadcasts
// fragment-load progress.
//
// Publishing is synchronous and inline with the mutating call that produced
// the event; there is no background goroutine mutating tree state, keeping
// the package's single-threaded, synchronous contract intact (see the
// package's concurrency model).
package events

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("veb")
}
