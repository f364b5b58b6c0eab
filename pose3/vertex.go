package pose3

import (
	"fmt"

	"github.com/katalvlaran/posegraph/manifold"
)

// Vertex is an SE(3) pose, retracted by right composition with the
// exponential of its tangent increment.
type Vertex struct {
	x manifold.SE3
}

// NewVertex wraps x as a graph vertex.
func NewVertex(x manifold.SE3) *Vertex {
	return &Vertex{x: x}
}

// Pose returns the vertex's current estimate.
func (v *Vertex) Pose() manifold.SE3 { return v.x }

// Dim implements graph.Vertex: SE(3) has a 6-dimensional tangent space,
// [rho(0:3), phi(3:6)].
func (v *Vertex) Dim() int { return 6 }

// Update implements graph.Vertex: x <- x . Exp(delta).
func (v *Vertex) Update(delta []float64) error {
	if len(delta) != 6 {
		return fmt.Errorf("pose3.Vertex.Update: len(delta)=%d, want 6", len(delta))
	}
	var xi [6]float64
	copy(xi[:], delta)
	v.x = v.x.Mul(manifold.ExpSE3(xi))

	return nil
}
