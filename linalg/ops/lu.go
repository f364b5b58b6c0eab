package ops

import (
	"fmt"

	"github.com/katalvlaran/posegraph/linalg"
)

// LU performs Doolittle LU decomposition on the square matrix m, returning
// L (unit lower triangular) and U (upper triangular) such that m == L*U.
//
// Complexity: O(n^3) time, O(n^2) memory, where n = m.Rows().
func LU(m *linalg.Dense) (L, U *linalg.Dense, err error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, nil, fmt.Errorf("LU: non-square matrix %dx%d: %w", rows, cols, linalg.ErrDimensionMismatch)
	}
	n := rows

	L, err = linalg.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	U, err = linalg.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("LU: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = L.Set(i, i, 1)
	}

	var sum, lVal, uVal, aVal, uDiag float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum = 0
			for k := 0; k < i; k++ {
				lVal, _ = L.At(i, k)
				uVal, _ = U.At(k, j)
				sum += lVal * uVal
			}
			aVal, _ = m.At(i, j)
			_ = U.Set(i, j, aVal-sum)
		}
		for j := i + 1; j < n; j++ {
			sum = 0
			for k := 0; k < i; k++ {
				lVal, _ = L.At(j, k)
				uVal, _ = U.At(k, i)
				sum += lVal * uVal
			}
			aVal, _ = m.At(j, i)
			uDiag, _ = U.At(i, i)
			_ = L.Set(j, i, (aVal-sum)/uDiag)
		}
	}

	return L, U, nil
}
