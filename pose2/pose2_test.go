package pose2_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
	"github.com/katalvlaran/posegraph/pose2"
)

func TestVertexUpdateComposesOnTheRight(t *testing.T) {
	v := pose2.NewVertex(manifold.IdentitySE2())
	xi := [3]float64{1, 2, 0.4}
	require.NoError(t, v.Update(xi[:]))
	want := manifold.IdentitySE2().Mul(manifold.ExpSE2(xi))

	got := v.Pose()
	require.InDelta(t, want.X, got.X, 1e-12)
	require.InDelta(t, want.Y, got.Y, 1e-12)
	require.InDelta(t, want.Theta(), got.Theta(), 1e-12)
}

func TestBetweenEdgeResidualZeroAtMeasurement(t *testing.T) {
	step := manifold.NewSE2(0.3, 1, 0)
	v0 := pose2.NewVertex(manifold.IdentitySE2())
	v1 := pose2.NewVertex(manifold.IdentitySE2().Mul(step))
	info, _ := linalg.Identity(3)
	e := pose2.NewBetweenEdge(0, 1, step, info, nil)

	r, J, err := e.Residual([]graph.Vertex{v0, v1})
	require.NoError(t, err)
	for _, ri := range r {
		require.InDelta(t, 0.0, ri, 1e-9)
	}
	require.Len(t, J, 2)
	require.Len(t, J[0], 3)
	require.Len(t, J[1], 3)
}

func TestBetweenEdgeNonZeroResidualWhenInconsistent(t *testing.T) {
	step := manifold.NewSE2(0.3, 1, 0)
	v0 := pose2.NewVertex(manifold.IdentitySE2())
	v1 := pose2.NewVertex(manifold.IdentitySE2()) // didn't actually move
	info, _ := linalg.Identity(3)
	e := pose2.NewBetweenEdge(0, 1, step, info, nil)

	r, _, err := e.Residual([]graph.Vertex{v0, v1})
	require.NoError(t, err)
	var norm float64
	for _, ri := range r {
		norm += ri * ri
	}
	require.Greater(t, norm, 0.0)
	require.False(t, math.IsNaN(norm))
}
