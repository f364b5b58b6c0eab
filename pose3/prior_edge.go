package pose3

import (
	"fmt"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
)

// PriorEdge anchors a single SE(3) vertex to a fixed measurement z: r =
// Log(z^-1 . x), J = I. Driving r to zero pulls the vertex toward z.
type PriorEdge struct {
	link   [1]int
	z      manifold.SE3
	info   *linalg.Dense
	kernel kernel.Kernel
}

// NewPriorEdge builds a prior on vertex idx toward measurement z, with
// information matrix info (6x6) and an optional robust kernel (nil means
// plain L2).
func NewPriorEdge(idx int, z manifold.SE3, info *linalg.Dense, k kernel.Kernel) *PriorEdge {
	return &PriorEdge{link: [1]int{idx}, z: z, info: info, kernel: k}
}

func (e *PriorEdge) Arity() int                { return 1 }
func (e *PriorEdge) Link() []int               { return e.link[:] }
func (e *PriorEdge) Information() *linalg.Dense { return e.info }
func (e *PriorEdge) Kernel() kernel.Kernel      { return e.kernel }

// Residual implements graph.Edge.
func (e *PriorEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	v, ok := vs[0].(*Vertex)
	if !ok {
		return nil, nil, fmt.Errorf("pose3.PriorEdge: vertex is not *pose3.Vertex")
	}
	xi := manifold.LogSE3(e.z.Inv().Mul(v.Pose()))
	r := xi[:]

	J := identity6()

	return r, [][][]float64{J}, nil
}

func identity6() [][]float64 {
	I := make([][]float64, 6)
	for i := range I {
		I[i] = make([]float64, 6)
		I[i][i] = 1
	}

	return I
}
