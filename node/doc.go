// Package node implements the recursive van Emde Boas tree itself: the
// lazily-allocated cluster/summary structure that gives O(log log U) ordered
// queries and O(1) min/max over a fixed universe of non-negative integers.
//
// This package has no knowledge of any host-facing convenience (iterators,
// CLI output, error translation); the root package wraps it with those
// concerns. node.Tree is the whole hard part described in the package spec.
package node

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'veb'
func tracer() tracing.Trace {
	return tracing.Select("veb")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
