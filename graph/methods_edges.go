package graph

import "fmt"

// AddEdge validates e against the current vertex list and appends it.
//
// Validation order: nil check, arity/link-length match, each linked index
// in range, and a non-nil Information() must be square. The information
// size is not compared against any vertex's Dim() here; whether it matches
// the residual length is checked by the assembler at Residual time.
func (g *Graph) AddEdge(e Edge) (int, error) {
	if e == nil {
		return 0, ErrNilEdge
	}
	link := e.Link()
	if e.Arity() != len(link) {
		return 0, ErrBadArity
	}
	for _, idx := range link {
		if idx < 0 || idx >= len(g.vertices) {
			return 0, ErrIndexOutOfRange
		}
	}
	if info := e.Information(); info != nil {
		r, c := info.Dims()
		if r != c {
			return 0, fmt.Errorf("%w: information matrix not square (%dx%d)", ErrShapeMismatch, r, c)
		}
	}

	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.linkAdjacency(idx, link)

	return idx, nil
}

// Edges returns the edge list in insertion order. The slice is shared with
// the Graph's internal storage and must be treated as read-only.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
