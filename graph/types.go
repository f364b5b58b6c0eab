package graph

import (
	"errors"

	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
)

// Sentinel errors for graph construction.
var (
	// ErrNilVertex indicates a nil Vertex was passed to AddVertex.
	ErrNilVertex = errors.New("graph: nil vertex")

	// ErrNilEdge indicates a nil Edge was passed to AddEdge.
	ErrNilEdge = errors.New("graph: nil edge")

	// ErrIndexOutOfRange indicates an edge referenced a vertex index outside [0, len(vertices)).
	ErrIndexOutOfRange = errors.New("graph: vertex index out of range")

	// ErrBadArity indicates Edge.Arity() did not match len(Edge.Link()).
	ErrBadArity = errors.New("graph: edge arity does not match link count")

	// ErrShapeMismatch indicates Edge.Information() is not a square matrix.
	ErrShapeMismatch = errors.New("graph: information matrix shape mismatch")
)

// Vertex is a manifold-valued unknown in the factor graph.
//
// Dim reports the tangent-space dimension (6 for SE(3), 3 for SE(2), 2 or 3
// for a Euclidean landmark). Update applies a retraction: the vertex moves
// from its current value by the tangent increment delta (len(delta) ==
// Dim()), using whatever manifold-specific composition rule is appropriate
// (group multiplication for SE(3)/SE(2), plain addition for Euclidean
// landmarks). Update must not retain delta beyond the call.
type Vertex interface {
	Dim() int
	Update(delta []float64) error
}

// Edge is a measurement connecting one or more vertices.
//
// Arity reports how many vertices the edge touches; Link returns their
// indices into the owning Graph's vertex list, len(Link()) == Arity().
// Information returns the (symmetric, positive semi-definite) information
// matrix weighting the residual, sized residualDim x residualDim. Kernel
// returns the robust loss to apply to the squared weighted residual, or nil
// to mean plain least-squares (callers must resolve a nil Kernel via
// kernel.Resolve rather than branching on nil themselves). Residual
// evaluates the edge against the current vertex estimates vs (indexed by
// Link(), in that order), returning the residual vector r and its Jacobian
// blocks J, one matrix per linked vertex: J[k] is sized residualDim x
// vs[k].Dim(), i.e. len(J) == Arity(), len(J[k]) == len(r).
type Edge interface {
	Arity() int
	Link() []int
	Information() *linalg.Dense
	Kernel() kernel.Kernel
	Residual(vs []Vertex) (r []float64, J [][][]float64, err error)
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithSparse selects the sparse (block-CG) linear-solve path for any
// Solve/Assemble call against this Graph, instead of the dense path.
func WithSparse() GraphOption {
	return func(g *Graph) { g.sparse = true }
}

// WithDamping installs a Levenberg-style diagonal damping term, added to H
// as H += lambda*I before each solve. lambda <= 0 disables damping.
func WithDamping(lambda float64) GraphOption {
	return func(g *Graph) { g.damping = lambda }
}

// Graph holds vertices and edges in insertion order along with the
// bookkeeping assembler and linalg need: which vertices are free, their
// offsets into the flattened parameter vector, the total free parameter
// size, and a co-occurrence index of which vertex-index pairs share an
// edge.
type Graph struct {
	vertices []Vertex
	free     []bool
	offset   []int
	psize    int
	edges    []Edge

	// coOccurrence[[2]int{i,j}] (i<=j) lists the indices into edges of every
	// edge touching both vertex i and vertex j (i==j included, for the
	// diagonal block). Built incrementally by AddEdge.
	coOccurrence map[[2]int]map[int]struct{}

	sparse  bool
	damping float64

	offsetsStale bool
}

// NewGraph creates an empty Graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		coOccurrence: make(map[[2]int]map[int]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Sparse reports whether the sparse linear-solve path was requested.
func (g *Graph) Sparse() bool { return g.sparse }

// Damping returns the configured Levenberg-style damping coefficient.
func (g *Graph) Damping() float64 { return g.damping }

// SetSparse overrides the sparse/dense solve-path selection made at
// construction time. A caller driving repeated solves against the same
// Graph (e.g. solver.WithSparse) uses this instead of rebuilding the Graph.
func (g *Graph) SetSparse(sparse bool) { g.sparse = sparse }

// SetDamping overrides the Levenberg-style damping coefficient set at
// construction time.
func (g *Graph) SetDamping(lambda float64) { g.damping = lambda }
