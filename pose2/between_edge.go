package pose2

import (
	"fmt"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
)

// BetweenEdge constrains the relative transform between two SE(2) vertices
// against a measurement z: r = Log(z^-1 . T0^-1 . T1), the planar analogue
// of pose3.BetweenEdge, using the same -Ad(Tij^-1)/I closed-form Jacobian
// pattern generalized to SE(2)'s 3-dimensional tangent space.
type BetweenEdge struct {
	link   [2]int
	z      manifold.SE2
	info   *linalg.Dense
	kernel kernel.Kernel
}

// NewBetweenEdge constrains the relative pose from vertex i to vertex j to
// measurement z.
func NewBetweenEdge(i, j int, z manifold.SE2, info *linalg.Dense, k kernel.Kernel) *BetweenEdge {
	return &BetweenEdge{link: [2]int{i, j}, z: z, info: info, kernel: k}
}

func (e *BetweenEdge) Arity() int                { return 2 }
func (e *BetweenEdge) Link() []int               { return e.link[:] }
func (e *BetweenEdge) Information() *linalg.Dense { return e.info }
func (e *BetweenEdge) Kernel() kernel.Kernel      { return e.kernel }

// Residual implements graph.Edge.
func (e *BetweenEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	v0, ok0 := vs[0].(*Vertex)
	v1, ok1 := vs[1].(*Vertex)
	if !ok0 || !ok1 {
		return nil, nil, fmt.Errorf("pose2.BetweenEdge: vertices are not *pose2.Vertex")
	}
	T0, T1 := v0.Pose(), v1.Pose()
	Tij := T0.Inv().Mul(T1)
	xi := manifold.LogSE2(e.z.Inv().Mul(Tij))
	r := xi[:]

	Tji := T1.Inv().Mul(T0) // Tij^-1
	Ad := manifold.AdjointSE2(Tji)

	J0 := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		J0[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			J0[i][j] = -Ad[i][j]
		}
	}
	J1 := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	return r, [][][]float64{J0, J1}, nil
}
