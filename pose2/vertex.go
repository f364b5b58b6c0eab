package pose2

import (
	"fmt"

	"github.com/katalvlaran/posegraph/manifold"
)

// Vertex is an SE(2) pose, retracted by right composition with the
// exponential of its tangent increment.
type Vertex struct {
	x manifold.SE2
}

// NewVertex wraps x as a graph vertex.
func NewVertex(x manifold.SE2) *Vertex {
	return &Vertex{x: x}
}

// Pose returns the vertex's current estimate.
func (v *Vertex) Pose() manifold.SE2 { return v.x }

// Dim implements graph.Vertex: SE(2) has a 3-dimensional tangent space,
// [rho(0:2), phi(2)].
func (v *Vertex) Dim() int { return 3 }

// Update implements graph.Vertex: x <- x . Exp(delta).
func (v *Vertex) Update(delta []float64) error {
	if len(delta) != 3 {
		return fmt.Errorf("pose2.Vertex.Update: len(delta)=%d, want 3", len(delta))
	}
	var xi [3]float64
	copy(xi[:], delta)
	v.x = v.x.Mul(manifold.ExpSE2(xi))

	return nil
}
