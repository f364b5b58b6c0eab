package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/assembler"
	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
)

// euclideanVertex is a plain R^n vertex: Update is ordinary addition.
type euclideanVertex struct {
	dim int
	x   []float64
}

func newEuclideanVertex(x []float64) *euclideanVertex {
	return &euclideanVertex{dim: len(x), x: append([]float64(nil), x...)}
}

func (v *euclideanVertex) Dim() int { return v.dim }
func (v *euclideanVertex) Update(delta []float64) error {
	for i, d := range delta {
		v.x[i] += d
	}

	return nil
}

// springEdge measures a relative offset between two Euclidean vertices:
// r = (x1 - x0) - z, J0 = -I, J1 = I.
type springEdge struct {
	link   []int
	z      []float64
	info   *linalg.Dense
	kernel kernel.Kernel
}

func newSpringEdge(i, j int, z []float64) *springEdge {
	info, _ := linalg.Identity(len(z))

	return &springEdge{link: []int{i, j}, z: z, info: info}
}

func (e *springEdge) Arity() int                { return 2 }
func (e *springEdge) Link() []int                { return e.link }
func (e *springEdge) Information() *linalg.Dense { return e.info }
func (e *springEdge) Kernel() kernel.Kernel      { return e.kernel }
func (e *springEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	v0 := vs[0].(*euclideanVertex)
	v1 := vs[1].(*euclideanVertex)
	n := len(e.z)
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = v1.x[i] - v0.x[i] - e.z[i]
	}

	negI := make([][]float64, n)
	posI := make([][]float64, n)
	for i := 0; i < n; i++ {
		negI[i] = make([]float64, n)
		posI[i] = make([]float64, n)
		negI[i][i] = -1
		posI[i][i] = 1
	}

	return r, [][][]float64{negI, posI}, nil
}

func TestAssembleTwoVertexOneEdge(t *testing.T) {
	g := graph.NewGraph()
	i0, _ := g.AddVertex(newEuclideanVertex([]float64{0, 0}))
	i1, _ := g.AddVertex(newEuclideanVertex([]float64{1, 1}))
	_, err := g.AddEdge(newSpringEdge(i0, i1, []float64{2, 2}))
	require.NoError(t, err)

	system, score, err := assembler.Assemble(g)
	require.NoError(t, err)

	// r = (1,1) - (0,0) - (2,2) = (-1,-1); e2 = 1+1 = 2; L2 kernel => score = 2.
	require.InDelta(t, 2.0, score, 1e-12)

	// H should be [[I, -I], [-I, I]] (since J0=-I, J1=I, Omega=I, w=1).
	H, err := system.Densify()
	require.NoError(t, err)
	v00, _ := H.At(0, 0)
	v02, _ := H.At(0, 2)
	require.InDelta(t, 1.0, v00, 1e-12)
	require.InDelta(t, -1.0, v02, 1e-12)

	// g0 = J0^T*Omega*r = -r = (1,1); g1 = J1^T*Omega*r = r = (-1,-1).
	gvec := system.G()
	require.InDelta(t, 1.0, gvec[0], 1e-12)
	require.InDelta(t, -1.0, gvec[2], 1e-12)
}

func TestAssembleSkipsConstantVertexBlocks(t *testing.T) {
	g := graph.NewGraph()
	i0, _ := g.AddVertex(newEuclideanVertex([]float64{0, 0}))
	i1, _ := g.AddVertex(newEuclideanVertex([]float64{1, 1}))
	require.NoError(t, g.SetConstant(i0))
	_, err := g.AddEdge(newSpringEdge(i0, i1, []float64{2, 2}))
	require.NoError(t, err)

	system, _, err := assembler.Assemble(g)
	require.NoError(t, err)
	require.Equal(t, 2, system.ParamSize())

	_, ok := system.Block(i0, i0)
	require.False(t, ok)
	_, ok = system.Block(i1, i1)
	require.True(t, ok)
}

func TestAssembleAppliesDamping(t *testing.T) {
	g := graph.NewGraph(graph.WithDamping(0.5))
	i0, _ := g.AddVertex(newEuclideanVertex([]float64{0, 0}))
	i1, _ := g.AddVertex(newEuclideanVertex([]float64{1, 1}))
	_, err := g.AddEdge(newSpringEdge(i0, i1, []float64{2, 2}))
	require.NoError(t, err)

	system, _, err := assembler.Assemble(g)
	require.NoError(t, err)
	H, _ := system.Densify()
	v, _ := H.At(0, 0)
	require.InDelta(t, 1.5, v, 1e-12)
}

func TestAssembleParallelMatchesSequential(t *testing.T) {
	g := graph.NewGraph()
	for i := 0; i < 6; i++ {
		_, _ = g.AddVertex(newEuclideanVertex([]float64{float64(i), 0}))
	}
	for i := 0; i < 5; i++ {
		_, err := g.AddEdge(newSpringEdge(i, i+1, []float64{1, 0}))
		require.NoError(t, err)
	}

	seq, seqScore, err := assembler.Assemble(g)
	require.NoError(t, err)
	par, parScore, err := assembler.Assemble(g, assembler.WithParallel(3))
	require.NoError(t, err)

	require.InDelta(t, seqScore, parScore, 1e-9)
	seqH, _ := seq.Densify()
	parH, _ := par.Densify()
	for i := 0; i < seq.ParamSize(); i++ {
		for j := 0; j < seq.ParamSize(); j++ {
			a, _ := seqH.At(i, j)
			b, _ := parH.At(i, j)
			require.InDelta(t, a, b, 1e-9)
		}
	}
}

func TestAssembleRobustKernelDampensOutlier(t *testing.T) {
	g := graph.NewGraph()
	i0, _ := g.AddVertex(newEuclideanVertex([]float64{0, 0}))
	i1, _ := g.AddVertex(newEuclideanVertex([]float64{10, 10}))
	e := newSpringEdge(i0, i1, []float64{0, 0})
	e.kernel = kernel.Huber{Delta: 1.0}
	_, err := g.AddEdge(e)
	require.NoError(t, err)

	system, score, err := assembler.Assemble(g)
	require.NoError(t, err)
	// e2 = 200, way above Huber's Delta=1, so score is far below the raw L2 loss.
	require.Less(t, score, 200.0)
	require.Greater(t, score, 0.0)
	H, _ := system.Densify()
	v, _ := H.At(0, 0)
	require.Less(t, v, 1.0) // down-weighted information, not the raw w=1 block.
}
