package ops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/posegraph/linalg"
)

// ErrSingular is returned when a zero pivot is encountered during inversion
// or solve.
var ErrSingular = errors.New("ops: matrix is singular")

// Solve solves m*x = b for x via LU decomposition and forward/backward
// substitution, without forming an explicit inverse.
//
// Complexity: O(n^3) time (dominated by LU), O(n) extra memory.
func Solve(m *linalg.Dense, b []float64) ([]float64, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("Solve: non-square %dx%d: %w", rows, cols, linalg.ErrDimensionMismatch)
	}
	if len(b) != rows {
		return nil, fmt.Errorf("Solve: len(b)=%d, n=%d: %w", len(b), rows, linalg.ErrDimensionMismatch)
	}

	L, U, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	n := rows
	y := make([]float64, n)
	x := make([]float64, n)

	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < i; k++ {
			lVal, _ := L.At(i, k)
			sum += lVal * y[k]
		}
		y[i] = b[i] - sum
	}

	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for k := i + 1; k < n; k++ {
			uVal, _ := U.At(i, k)
			sum += uVal * x[k]
		}
		pivot, _ := U.At(i, i)
		if pivot == 0 {
			return nil, fmt.Errorf("Solve: zero pivot at %d: %w", i, ErrSingular)
		}
		x[i] = (y[i] - sum) / pivot
	}

	return x, nil
}

// Inverse returns the inverse of the square matrix m via LU-based solves
// against each basis vector.
//
// Complexity: O(n^3) time, O(n^2) memory.
func Inverse(m *linalg.Dense) (*linalg.Dense, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("Inverse: non-square %dx%d: %w", rows, cols, linalg.ErrDimensionMismatch)
	}
	n := rows

	L, U, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	inv, err := linalg.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	y := make([]float64, n)
	x := make([]float64, n)

	for col := 0; col < n; col++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				lVal, _ := L.At(i, k)
				sum += lVal * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		for i := n - 1; i >= 0; i-- {
			sum := 0.0
			for k := i + 1; k < n; k++ {
				uVal, _ := U.At(i, k)
				sum += uVal * x[k]
			}
			pivot, _ := U.At(i, i)
			if pivot == 0 {
				return nil, fmt.Errorf("Inverse: zero pivot at %d: %w", i, ErrSingular)
			}
			x[i] = (y[i] - sum) / pivot
		}
		for i := 0; i < n; i++ {
			_ = inv.Set(i, col, x[i])
		}
	}

	return inv, nil
}
