package report

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
)

// Report is a snapshot summary of a factor graph's size and error, taken at
// some point in its lifetime (typically after the last linearization of a
// solve).
type Report struct {
	FreeParams  int
	VertexCount int
	EdgeCount   int
	TotalError  float64

	// PerType sums each edge's kernel loss (rho) by the edge's dynamic Go
	// type, e.g. "*pose3.BetweenEdge".
	PerType map[string]float64

	// Diagnostics collects every "Bad Hessian matrix!"-style recovered
	// diagnostic emitted during the solve this Report describes, in the
	// order they occurred. Empty on a clean solve.
	Diagnostics []string
}

// Build assembles a Report for g given the total score of its last
// linearization and any diagnostics accumulated while producing it. The
// per-edge-type breakdown is recomputed directly from g's edges (a second,
// diagnostic-only residual evaluation, never affecting H/g/delta), so a
// caller may also call Build on a graph that was never solved at all (e.g.
// to report on an as-built graph before the first iteration).
func Build(g *graph.Graph, totalScore float64, diagnostics []string) *Report {
	return &Report{
		FreeParams:  g.ParamSize(),
		VertexCount: g.VertexCount(),
		EdgeCount:   g.EdgeCount(),
		TotalError:  totalScore,
		PerType:     perTypeScores(g),
		Diagnostics: diagnostics,
	}
}

// perTypeScores re-evaluates every edge's residual against the graph's
// current vertex estimates and buckets its kernel loss by dynamic type.
// Edges whose Residual errors are silently skipped: reporting is
// diagnostic-only and must never itself fail a solve.
func perTypeScores(g *graph.Graph) map[string]float64 {
	vertices := g.Vertices()
	out := make(map[string]float64, g.EdgeCount())
	for _, e := range g.Edges() {
		link := e.Link()
		vs := make([]graph.Vertex, len(link))
		for i, idx := range link {
			vs[i] = vertices[idx]
		}
		r, _, err := e.Residual(vs)
		if err != nil {
			continue
		}
		omegaR, err := e.Information().MulVec(r, nil)
		if err != nil {
			continue
		}
		var e2 float64
		for i, v := range r {
			e2 += v * omegaR[i]
		}
		rho, _ := kernel.Resolve(e.Kernel()).Apply(e2)
		out[reflect.TypeOf(e).String()] += rho
	}

	return out
}

// Fprint writes a human-readable summary to w, in the order: free
// parameters, vertex count, edge count, total error, per-type error
// (alphabetical by type name for deterministic output), then any
// diagnostics.
func (r *Report) Fprint(w io.Writer) {
	fmt.Fprintf(w, "free params: %d\n", r.FreeParams)
	fmt.Fprintf(w, "vertices: %d\n", r.VertexCount)
	fmt.Fprintf(w, "edges: %d\n", r.EdgeCount)
	fmt.Fprintf(w, "total error: %f\n", r.TotalError)

	types := make([]string, 0, len(r.PerType))
	for t := range r.PerType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %s: %f\n", t, r.PerType[t])
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "diagnostic: %s\n", d)
	}
}

// String implements fmt.Stringer by rendering Fprint into a strings.Builder.
func (r *Report) String() string {
	var b strings.Builder
	r.Fprint(&b)

	return b.String()
}
