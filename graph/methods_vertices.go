package graph

// AddVertex appends v to the graph, free (estimated) by default, and
// returns its index. Offsets are recomputed lazily on first use after this
// call, keeping AddVertex O(1) amortized even for long build sequences.
func (g *Graph) AddVertex(v Vertex) (int, error) {
	if v == nil {
		return 0, ErrNilVertex
	}
	idx := len(g.vertices)
	g.vertices = append(g.vertices, v)
	g.free = append(g.free, true)
	g.offset = append(g.offset, 0)
	g.offsetsStale = true

	return idx, nil
}

// SetConstant marks the vertex at idx as held fixed: its current value
// still enters the residuals of the edges touching it, but it never appears
// in the solved normal-equation system and its Update is never called by
// the solver.
func (g *Graph) SetConstant(idx int) error {
	if idx < 0 || idx >= len(g.vertices) {
		return ErrIndexOutOfRange
	}
	if g.free[idx] {
		g.free[idx] = false
		g.offsetsStale = true
	}

	return nil
}

// Free reports whether the vertex at idx is free (estimated) rather than
// constant (fixed).
func (g *Graph) Free(idx int) bool {
	return g.free[idx]
}

// Offset returns the vertex's starting index into the flattened free
// parameter vector. The result is only meaningful for free vertices;
// constant vertices have no slot and Offset returns -1 for them.
func (g *Graph) Offset(idx int) int {
	g.recomputeOffsets()
	if !g.free[idx] {
		return -1
	}

	return g.offset[idx]
}

// ParamSize returns the total size of the flattened free parameter vector
// (the sum of Dim() over every free vertex).
func (g *Graph) ParamSize() int {
	g.recomputeOffsets()

	return g.psize
}

// Vertices returns the vertex list in insertion order. The slice is shared
// with the Graph's internal storage and must be treated as read-only.
func (g *Graph) Vertices() []Vertex {
	return g.vertices
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// recomputeOffsets rebuilds offset/psize from scratch when stale. Insertion
// order is preserved, so offsets are deterministic across runs given the
// same build sequence, matching the determinism invariant the rest of the
// module relies on.
func (g *Graph) recomputeOffsets() {
	if !g.offsetsStale {
		return
	}
	cursor := 0
	for i, v := range g.vertices {
		if !g.free[i] {
			g.offset[i] = -1

			continue
		}
		g.offset[i] = cursor
		cursor += v.Dim()
	}
	g.psize = cursor
	g.offsetsStale = false
}
