package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/posegraph/linalg"
)

func TestNewDenseRejectsNonPositive(t *testing.T) {
	_, err := linalg.NewDense(0, 3)
	require.ErrorIs(t, err, linalg.ErrInvalidDimensions)
	_, err = linalg.NewDense(3, -1)
	require.ErrorIs(t, err, linalg.ErrInvalidDimensions)
}

func TestDenseSetAtRoundTrip(t *testing.T) {
	d, err := linalg.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, d.Set(1, 2, 5.5))
	v, err := d.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 5.5, v)
}

func TestDenseAtOutOfBounds(t *testing.T) {
	d, err := linalg.NewDense(2, 2)
	require.NoError(t, err)
	_, err = d.At(2, 0)
	require.ErrorIs(t, err, linalg.ErrIndexOutOfBounds)
	_, err = d.At(0, -1)
	require.ErrorIs(t, err, linalg.ErrIndexOutOfBounds)
}

func TestDenseAdd(t *testing.T) {
	d, err := linalg.NewDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, d.Add(0, 0, 2))
	require.NoError(t, d.Add(0, 0, 3))
	v, _ := d.At(0, 0)
	require.Equal(t, 5.0, v)
}

func TestDenseClone(t *testing.T) {
	d, _ := linalg.NewDense(2, 2)
	_ = d.Set(0, 0, 1)
	clone := d.Clone()
	_ = clone.Set(0, 0, 99)
	v, _ := d.At(0, 0)
	require.Equal(t, 1.0, v)
}

func TestIdentity(t *testing.T) {
	I, err := linalg.Identity(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := I.At(i, j)
			if i == j {
				require.Equal(t, 1.0, v)
			} else {
				require.Equal(t, 0.0, v)
			}
		}
	}
}

func TestDenseMulVec(t *testing.T) {
	d, _ := linalg.NewDenseFromRows([][]float64{
		{1, 2},
		{3, 4},
	})
	y, err := d.MulVec([]float64{1, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, y)
}

func TestDenseMulVecDimensionMismatch(t *testing.T) {
	d, _ := linalg.NewDense(2, 2)
	_, err := d.MulVec([]float64{1, 2, 3}, nil)
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}
