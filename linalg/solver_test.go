package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/linalg"
)

func TestSolveWellConditionedSystem(t *testing.T) {
	bs := linalg.NewBlockSystem(2)
	bs.RegisterVertex(0, 0, 2)
	H, _ := linalg.NewDenseFromRows([][]float64{{3, 1}, {1, 2}})
	require.NoError(t, bs.AddBlock(0, 0, H))
	require.NoError(t, bs.AddG(0, []float64{9, 8}))

	delta, diag, err := linalg.Solve(bs)
	require.NoError(t, err)
	require.Empty(t, diag)
	require.InDelta(t, 2.0, delta[0], 1e-9)
	require.InDelta(t, 3.0, delta[1], 1e-9)
}

func TestSolveFallsBackOnSingularHessian(t *testing.T) {
	bs := linalg.NewBlockSystem(2)
	bs.RegisterVertex(0, 0, 2)
	H, _ := linalg.NewDenseFromRows([][]float64{{1, 1}, {1, 1}})
	require.NoError(t, bs.AddBlock(0, 0, H))
	require.NoError(t, bs.AddG(0, []float64{2, 2}))

	delta, diag, err := linalg.Solve(bs)
	require.NoError(t, err)
	require.Equal(t, "Bad Hessian matrix!", diag)
	require.Len(t, delta, 2)
}

func TestSolveSparseMatchesDenseOnSPDSystem(t *testing.T) {
	bs := linalg.NewBlockSystem(2)
	bs.RegisterVertex(0, 0, 2)
	H, _ := linalg.NewDenseFromRows([][]float64{{4, 1}, {1, 3}})
	require.NoError(t, bs.AddBlock(0, 0, H))
	require.NoError(t, bs.AddG(0, []float64{5, 6}))

	dense, _, err := linalg.Solve(bs)
	require.NoError(t, err)

	sparse, diag, err := linalg.SolveSparse(bs, 1e-10, 100)
	require.NoError(t, err)
	require.Empty(t, diag)
	for i := range dense {
		require.InDelta(t, dense[i], sparse[i], 1e-6)
	}
}
