package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/posegraph/linalg"
)

// ErrNotSymmetric is returned when Eigen's input matrix is not symmetric
// within tol.
var ErrNotSymmetric = errors.New("ops: matrix is not symmetric")

// ErrEigenFailed is returned if the Jacobi sweep does not converge within
// maxIter.
var ErrEigenFailed = errors.New("ops: eigen decomposition did not converge")

// Eigen performs Jacobi eigenvalue decomposition on the symmetric matrix m,
// returning its eigenvalues and the matrix Q whose columns are the
// corresponding eigenvectors. tol bounds both the symmetry check and the
// off-diagonal convergence criterion; maxIter caps the number of rotations.
//
// Complexity: O(n^3) per sweep, worst case O(maxIter*n^3); O(n^2) memory.
func Eigen(m *linalg.Dense, tol float64, maxIter int) (eigenvalues []float64, Q *linalg.Dense, err error) {
	n, cols := m.Dims()
	if n != cols {
		return nil, nil, fmt.Errorf("Eigen: non-square %dx%d: %w", n, cols, linalg.ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, _ := m.At(i, j)
			aji, _ := m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return nil, nil, ErrNotSymmetric
			}
		}
	}

	A := m.Clone()
	Q, err = linalg.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = Q.Set(i, i, 1.0)
	}

	var (
		iter     int
		p, q     int
		maxOff   float64
		theta, t float64
		c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		maxOff = 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off, _ := A.At(i, j)
				if math.Abs(off) > maxOff {
					maxOff = math.Abs(off)
					p, q = i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app, _ := A.At(p, p)
		aqq, _ := A.At(q, q)
		apq, _ := A.At(p, q)
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i := 0; i < n; i++ {
			if i != p && i != q {
				aip, _ := A.At(i, p)
				aiq, _ := A.At(i, q)
				_ = A.Set(i, p, c*aip-s*aiq)
				_ = A.Set(p, i, c*aip-s*aiq)
				_ = A.Set(i, q, s*aip+c*aiq)
				_ = A.Set(q, i, s*aip+c*aiq)
			}
		}
		_ = A.Set(p, p, c*c*app-2*c*s*apq+s*s*aqq)
		_ = A.Set(q, q, s*s*app+2*c*s*apq+c*c*aqq)
		_ = A.Set(p, q, 0.0)
		_ = A.Set(q, p, 0.0)

		for i := 0; i < n; i++ {
			qip, _ := Q.At(i, p)
			qiq, _ := Q.At(i, q)
			_ = Q.Set(i, p, c*qip-s*qiq)
			_ = Q.Set(i, q, s*qip+c*qiq)
		}
	}

	if iter == maxIter {
		return nil, nil, ErrEigenFailed
	}

	eigenvalues = make([]float64, n)
	for i := 0; i < n; i++ {
		eigenvalues[i], _ = A.At(i, i)
	}

	return eigenvalues, Q, nil
}

// PseudoInverse builds the Moore-Penrose pseudo-inverse of the symmetric
// matrix m via its eigendecomposition: pinv(m) = Q diag(1/lambda_i, or 0 if
// |lambda_i| <= tol) Q^T. Used as the fallback when the primary dense solve
// hits a singular or ill-conditioned H.
func PseudoInverse(m *linalg.Dense, tol float64, maxIter int) (*linalg.Dense, error) {
	n, _ := m.Dims()
	eigenvalues, Q, err := Eigen(m, tol, maxIter)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}

	inv, err := linalg.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				if math.Abs(eigenvalues[k]) <= tol {
					continue
				}
				qik, _ := Q.At(i, k)
				qjk, _ := Q.At(j, k)
				sum += qik * qjk / eigenvalues[k]
			}
			_ = inv.Set(i, j, sum)
		}
	}

	return inv, nil
}
