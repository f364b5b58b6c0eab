package graph

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/katalvlaran/posegraph/kernel"
)

// Report evaluates every edge against g's current vertex estimates and
// writes a diagnostic summary to w: free parameter count, vertex/edge
// counts, total weighted error, and a per-edge-type breakdown (alphabetical
// by type name for deterministic output). It never mutates g and never
// runs a solve — this is graph.report() from the source this module is
// adapted from, a read-only snapshot of the graph as it currently stands,
// usable both before and after a solver.Solve call.
//
// The scoring loop here intentionally duplicates report.Build's
// perTypeScores rather than importing package report, which itself imports
// package graph to accept a *Graph argument — graph cannot import report
// (or assembler) without an import cycle.
func (g *Graph) Report(w io.Writer) error {
	perType := make(map[string]float64, len(g.edges))
	var total float64
	for _, e := range g.edges {
		link := e.Link()
		vs := make([]Vertex, len(link))
		for i, idx := range link {
			vs[i] = g.vertices[idx]
		}
		r, _, err := e.Residual(vs)
		if err != nil {
			return fmt.Errorf("graph.Report: %w", err)
		}
		omegaR, err := e.Information().MulVec(r, nil)
		if err != nil {
			return fmt.Errorf("graph.Report: %w", err)
		}
		var e2 float64
		for i, v := range r {
			e2 += v * omegaR[i]
		}
		rho, _ := kernel.Resolve(e.Kernel()).Apply(e2)
		total += rho
		perType[reflect.TypeOf(e).String()] += rho
	}

	fmt.Fprintf(w, "free params: %d\n", g.ParamSize())
	fmt.Fprintf(w, "vertices: %d\n", g.VertexCount())
	fmt.Fprintf(w, "edges: %d\n", g.EdgeCount())
	fmt.Fprintf(w, "total error: %f\n", total)

	types := make([]string, 0, len(perType))
	for t := range perType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %s: %f\n", t, perType[t])
	}

	return nil
}
