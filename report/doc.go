// Package report aggregates diagnostic summaries of a factor graph: free
// parameter count, vertex/edge counts, total kernel-reweighted error, a
// per-edge-type error breakdown, and any "Bad Hessian matrix!"-style
// diagnostics accumulated across a solve.
//
// Report is purely informational — building or printing one never mutates
// the graph it describes. PerType is keyed by the edge's dynamic Go type
// name (via reflect.TypeOf(e).String()), mirroring the source this package
// is adapted from keying its per-type breakdown on type(edge).__name__.
package report
