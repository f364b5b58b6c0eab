package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/report"
)

type point struct{ x, y float64 }

func (p *point) Dim() int { return 2 }
func (p *point) Update(delta []float64) error {
	p.x += delta[0]
	p.y += delta[1]

	return nil
}

type offsetEdge struct {
	link []int
	z    []float64
	info *linalg.Dense
	k    kernel.Kernel
}

func (e *offsetEdge) Arity() int                { return 2 }
func (e *offsetEdge) Link() []int               { return e.link }
func (e *offsetEdge) Information() *linalg.Dense { return e.info }
func (e *offsetEdge) Kernel() kernel.Kernel      { return e.k }
func (e *offsetEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	a := vs[0].(*point)
	b := vs[1].(*point)
	r := []float64{b.x - a.x - e.z[0], b.y - a.y - e.z[1]}
	negI := [][]float64{{-1, 0}, {0, -1}}
	posI := [][]float64{{1, 0}, {0, 1}}

	return r, [][][]float64{negI, posI}, nil
}

func newOffsetEdge(i, j int, z []float64) *offsetEdge {
	info, _ := linalg.Identity(2)

	return &offsetEdge{link: []int{i, j}, z: z, info: info}
}

func TestBuildReportsCountsAndTotalError(t *testing.T) {
	g := graph.NewGraph()
	_, _ = g.AddVertex(&point{0, 0})
	_, _ = g.AddVertex(&point{1, 1})
	_, err := g.AddEdge(newOffsetEdge(0, 1, []float64{2, 2}))
	require.NoError(t, err)

	rep := report.Build(g, 2.0, nil)
	require.Equal(t, 2, rep.VertexCount)
	require.Equal(t, 1, rep.EdgeCount)
	require.Equal(t, 4, rep.FreeParams)
	require.InDelta(t, 2.0, rep.TotalError, 1e-12)
}

func TestBuildBucketsPerEdgeType(t *testing.T) {
	g := graph.NewGraph()
	_, _ = g.AddVertex(&point{0, 0})
	_, _ = g.AddVertex(&point{1, 1})
	_, err := g.AddEdge(newOffsetEdge(0, 1, []float64{2, 2}))
	require.NoError(t, err)

	rep := report.Build(g, 2.0, nil)
	require.Len(t, rep.PerType, 1)
	for _, v := range rep.PerType {
		require.InDelta(t, 2.0, v, 1e-9)
	}
}

func TestFprintIncludesDiagnostics(t *testing.T) {
	g := graph.NewGraph()
	rep := report.Build(g, 0, []string{"Bad Hessian matrix!"})
	out := rep.String()
	require.True(t, strings.Contains(out, "Bad Hessian matrix!"))
	require.True(t, strings.Contains(out, "free params: 0"))
}

func TestStringMatchesFprint(t *testing.T) {
	g := graph.NewGraph()
	_, _ = g.AddVertex(&point{0, 0})
	rep := report.Build(g, 1.5, nil)

	var b strings.Builder
	rep.Fprint(&b)
	require.Equal(t, b.String(), rep.String())
}
