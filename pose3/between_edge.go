package pose3

import (
	"fmt"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
)

// BetweenEdge constrains the relative transform between two SE(3) vertices
// against a measurement z: r = Log(z^-1 . T0^-1 . T1). This is the
// workhorse edge of pose-graph SLAM (odometry and loop-closure factors are
// both BetweenEdges).
type BetweenEdge struct {
	link   [2]int
	z      manifold.SE3
	info   *linalg.Dense
	kernel kernel.Kernel
}

// NewBetweenEdge constrains the relative pose from vertex i to vertex j
// (i.e. T_i^-1 . T_j) to measurement z.
func NewBetweenEdge(i, j int, z manifold.SE3, info *linalg.Dense, k kernel.Kernel) *BetweenEdge {
	return &BetweenEdge{link: [2]int{i, j}, z: z, info: info, kernel: k}
}

func (e *BetweenEdge) Arity() int                { return 2 }
func (e *BetweenEdge) Link() []int               { return e.link[:] }
func (e *BetweenEdge) Information() *linalg.Dense { return e.info }
func (e *BetweenEdge) Kernel() kernel.Kernel      { return e.kernel }

// Residual implements graph.Edge.
//
// Writing Tij = T0^-1 . T1 for the estimated relative pose, the right-
// perturbation retraction (T0' = T0.Exp(d0), T1' = T1.Exp(d1)) gives, to
// first order:
//
//	Tij' ≈ Tij . Exp(-Ad(Tij^-1) d0 + d1)
//
// so the Jacobian with respect to vertex 0's tangent is -Ad(Tij^-1) and
// with respect to vertex 1's tangent is the identity; this is the closed
// form AdjointSE3/Skew/MakeRt produce directly, without numerically
// differentiating Log.
func (e *BetweenEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	v0, ok0 := vs[0].(*Vertex)
	v1, ok1 := vs[1].(*Vertex)
	if !ok0 || !ok1 {
		return nil, nil, fmt.Errorf("pose3.BetweenEdge: vertices are not *pose3.Vertex")
	}
	T0, T1 := v0.Pose(), v1.Pose()
	Tij := T0.Inv().Mul(T1)
	xi := manifold.LogSE3(e.z.Inv().Mul(Tij))
	r := xi[:]

	Tji := T1.Inv().Mul(T0) // Tij^-1
	Ad := manifold.AdjointSE3(Tji)

	J0 := make([][]float64, 6)
	for i := 0; i < 6; i++ {
		J0[i] = make([]float64, 6)
		for j := 0; j < 6; j++ {
			J0[i][j] = -Ad[i][j]
		}
	}
	J1 := identity6()

	return r, [][][]float64{J0, J1}, nil
}
