package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/linalg"
)

func buildTwoVertexSystem(t *testing.T) *linalg.BlockSystem {
	t.Helper()
	bs := linalg.NewBlockSystem(4)
	bs.RegisterVertex(0, 0, 2)
	bs.RegisterVertex(1, 2, 2)

	diag, _ := linalg.NewDenseFromRows([][]float64{{2, 0}, {0, 2}})
	require.NoError(t, bs.AddBlock(0, 0, diag))
	require.NoError(t, bs.AddBlock(1, 1, diag))
	off, _ := linalg.NewDenseFromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, bs.AddBlock(0, 1, off))

	require.NoError(t, bs.AddG(0, []float64{1, 2}))
	require.NoError(t, bs.AddG(1, []float64{3, 4}))

	return bs
}

func TestBlockSystemDensify(t *testing.T) {
	bs := buildTwoVertexSystem(t)
	H, err := bs.Densify()
	require.NoError(t, err)

	want := [4][4]float64{
		{2, 0, 1, 0},
		{0, 2, 0, 1},
		{1, 0, 2, 0},
		{0, 1, 0, 2},
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v, _ := H.At(i, j)
			require.InDelta(t, want[i][j], v, 1e-12)
		}
	}
}

func TestBlockSystemG(t *testing.T) {
	bs := buildTwoVertexSystem(t)
	require.Equal(t, []float64{1, 2, 3, 4}, bs.G())
}

func TestBlockSystemMulVecToMatchesDense(t *testing.T) {
	bs := buildTwoVertexSystem(t)
	H, err := bs.Densify()
	require.NoError(t, err)

	x := []float64{1, -1, 2, 0.5}
	want, err := H.MulVec(x, nil)
	require.NoError(t, err)

	got := make([]float64, 4)
	bs.MulVecTo(got, false, x)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestBlockSystemAddDiagonal(t *testing.T) {
	bs := buildTwoVertexSystem(t)
	bs.AddDiagonal(0.5)
	H, err := bs.Densify()
	require.NoError(t, err)
	v, _ := H.At(0, 0)
	require.InDelta(t, 2.5, v, 1e-12)
}

func TestBlockSystemDiagonalPreconditioner(t *testing.T) {
	bs := buildTwoVertexSystem(t)
	diag := bs.DiagonalPreconditioner()
	require.Equal(t, []float64{2, 2, 2, 2}, diag)
}
