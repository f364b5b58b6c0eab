package graph

// linkAdjacency records, for every unordered pair of vertex indices touched
// by the edge at edgeIdx (including a vertex paired with itself), that this
// edge contributes to that (i,j) block. The index is exposed through
// CoOccurringEdges and BlockPairs; assembler and linalg's BlockSystem do
// not read it (BlockSystem allocates blocks as edges contribute to them).
func (g *Graph) linkAdjacency(edgeIdx int, link []int) {
	for a := 0; a < len(link); a++ {
		for b := a; b < len(link); b++ {
			key := pairKey(link[a], link[b])
			bucket := g.coOccurrence[key]
			if bucket == nil {
				bucket = make(map[int]struct{})
				g.coOccurrence[key] = bucket
			}
			bucket[edgeIdx] = struct{}{}
		}
	}
}

// CoOccurringEdges returns the indices of every edge touching both vertex i
// and vertex j (order-independent; i == j returns edges touching i alone).
func (g *Graph) CoOccurringEdges(i, j int) []int {
	bucket := g.coOccurrence[pairKey(i, j)]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]int, 0, len(bucket))
	for e := range bucket {
		out = append(out, e)
	}

	return out
}

// BlockPairs returns every distinct (i,j) vertex-index pair (i<=j) that
// co-occurs in some edge, in no particular order; callers that need
// determinism (e.g. dense densification) should sort the result.
func (g *Graph) BlockPairs() [][2]int {
	out := make([][2]int, 0, len(g.coOccurrence))
	for key := range g.coOccurrence {
		out = append(out, key)
	}

	return out
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}

	return [2]int{i, j}
}
