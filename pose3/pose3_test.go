package pose3_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
	"github.com/katalvlaran/posegraph/pose3"
)

func TestVertexUpdateComposesOnTheRight(t *testing.T) {
	v := pose3.NewVertex(manifold.IdentitySE3())
	xi := [6]float64{1, 2, 3, 0.1, 0.2, 0.3}
	require.NoError(t, v.Update(xi[:]))
	want := manifold.IdentitySE3().Mul(manifold.ExpSE3(xi))

	got := v.Pose()
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			gr, _ := manifold.MakeRt(got)
			wr, _ := manifold.MakeRt(want)
			if j < 3 {
				require.InDelta(t, wr[i][j], gr[i][j], 1e-12)
			}
		}
	}
}

func TestPriorEdgeResidualZeroAtMeasurement(t *testing.T) {
	z := manifold.ExpSE3([6]float64{1, 2, 3, 0.1, 0.2, 0.3})
	v := pose3.NewVertex(z)
	info, _ := linalg.Identity(6)
	e := pose3.NewPriorEdge(0, z, info, nil)

	r, J, err := e.Residual([]graph.Vertex{v})
	require.NoError(t, err)
	for _, ri := range r {
		require.InDelta(t, 0.0, ri, 1e-9)
	}
	require.Len(t, J, 1)
	require.Len(t, J[0], 6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, J[0][i][j], 1e-12)
		}
	}
}

func TestBetweenEdgeResidualZeroAtMeasurement(t *testing.T) {
	odom := manifold.ExpSE3([6]float64{0.2, 0, 0, 0.05, 0, 0.5})
	v0 := pose3.NewVertex(manifold.IdentitySE3())
	v1 := pose3.NewVertex(manifold.IdentitySE3().Mul(odom))
	info, _ := linalg.Identity(6)
	e := pose3.NewBetweenEdge(0, 1, odom, info, nil)

	r, J, err := e.Residual([]graph.Vertex{v0, v1})
	require.NoError(t, err)
	for _, ri := range r {
		require.InDelta(t, 0.0, ri, 1e-9)
	}
	require.Len(t, J, 2)
	require.Len(t, J[0], 6)
	require.Len(t, J[1], 6)
}

func TestLandmarkEdgeResidualZeroAtMeasurement(t *testing.T) {
	pose := pose3.NewVertex(manifold.ExpSE3([6]float64{1, 0, 0, 0, 0, 0.3}))
	R, tr := manifold.MakeRt(pose.Pose())
	world := [3]float64{2, 1, 0.5}
	var local [3]float64
	var diff [3]float64
	for i := 0; i < 3; i++ {
		diff[i] = world[i] - tr[i]
	}
	for i := 0; i < 3; i++ {
		var s float64
		for k := 0; k < 3; k++ {
			s += R[k][i] * diff[k]
		}
		local[i] = s
	}
	lm := pose3.NewLandmark(world)
	info, _ := linalg.Identity(3)
	e := pose3.NewLandmarkEdge(0, 1, local, info, nil)

	r, J, err := e.Residual([]graph.Vertex{pose, lm})
	require.NoError(t, err)
	for _, ri := range r {
		require.InDelta(t, 0.0, ri, 1e-9)
	}
	require.Len(t, J, 2)
	require.Len(t, J[0], 3) // pose block: 3x6
	require.Len(t, J[0][0], 6)
	require.Len(t, J[1], 3) // landmark block: 3x3
	require.Len(t, J[1][0], 3)
}
