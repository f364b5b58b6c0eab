package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/posegraph/linalg/ops"
)

// eigenTol/eigenMaxIter bound the Jacobi eigendecomposition backing the
// pseudo-inverse fallback; they are not user-tunable because they are an
// internal numerical-recovery detail, not a solve-quality knob.
const (
	eigenTol     = 1e-10
	eigenMaxIter = 100
)

// Solve runs a dense solve of system.H()*delta = system.G() (implicitly,
// via Densify), falling back to the Jacobi-eigen pseudo-inverse if the LU
// solve hits a singular pivot. diagnostic is empty on the primary-path
// success and set to "Bad Hessian matrix!" when the fallback was used; it
// is never an error, since the solve itself still produces a usable delta.
func Solve(system *BlockSystem) (delta []float64, diagnostic string, err error) {
	H, err := system.Densify()
	if err != nil {
		return nil, "", fmt.Errorf("linalg.Solve: %w", err)
	}

	delta, solveErr := ops.Solve(H, system.G())
	if solveErr == nil {
		return delta, "", nil
	}

	pinv, pinvErr := ops.PseudoInverse(H, eigenTol, eigenMaxIter)
	if pinvErr != nil {
		return nil, "", fmt.Errorf("linalg.Solve: primary solve failed (%v) and pseudo-inverse fallback failed: %w", solveErr, pinvErr)
	}
	delta, err = pinv.MulVec(system.G(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("linalg.Solve: pseudo-inverse apply: %w", err)
	}

	return delta, "Bad Hessian matrix!", nil
}

// blockMulVecTo adapts BlockSystem to gonum's linsolve.MulVecToer, whose
// MulVecTo takes *mat.VecDense/mat.Vector rather than plain []float64.
type blockMulVecTo struct {
	bs *BlockSystem
}

func (m blockMulVecTo) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	n := m.bs.ParamSize()
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = x.AtVec(i)
	}
	ys := make([]float64, n)
	m.bs.MulVecTo(ys, trans, xs)
	dst.SetVec(ys)
}

// jacobiPrecon implements linsolve.Settings.PreconSolve as a diagonal
// (Jacobi) preconditioner built from system's diagonal blocks.
type jacobiPrecon struct {
	diag []float64
}

func (p jacobiPrecon) solve(dst *mat.VecDense, _ bool, rhs mat.Vector) error {
	n := rhs.Len()
	for i := 0; i < n; i++ {
		d := p.diag[i]
		if d == 0 {
			d = 1
		}
		dst.SetVec(i, rhs.AtVec(i)/d)
	}

	return nil
}

// SolveSparse runs an iterative (CG, Jacobi-preconditioned) solve of
// system.H()*delta = system.G() without ever densifying H, for large
// problems where the block-sparse structure dominates the dense cost.
//
// H in pose-graph problems is symmetric positive semi-definite near the
// optimum; CG is the idiomatic choice for that structure. gonum exposes no
// public sparse direct (Cholesky/LU) solver, so CG-with-fallback to the
// dense pseudo-inverse substitutes for a sparse direct solve when CG fails
// to converge.
func SolveSparse(system *BlockSystem, tol float64, maxIter int) (delta []float64, diagnostic string, err error) {
	n := system.ParamSize()
	b := mat.NewVecDense(n, system.G())
	x0 := mat.NewVecDense(n, nil)

	diag := system.DiagonalPreconditioner()
	precon := jacobiPrecon{diag: diag}

	result, solveErr := linsolve.Iterative(blockMulVecTo{bs: system}, b, &linsolve.CG{}, &linsolve.Settings{
		X:             x0,
		Tolerance:     tol,
		MaxIterations: maxIter,
		PreconSolve:   precon.solve,
	})
	if solveErr == nil {
		delta = make([]float64, n)
		for i := 0; i < n; i++ {
			delta[i] = result.X.AtVec(i)
		}

		return delta, "", nil
	}

	H, err := system.Densify()
	if err != nil {
		return nil, "", fmt.Errorf("linalg.SolveSparse: %w", err)
	}
	pinv, pinvErr := ops.PseudoInverse(H, eigenTol, eigenMaxIter)
	if pinvErr != nil {
		return nil, "", fmt.Errorf("linalg.SolveSparse: CG failed (%v) and pseudo-inverse fallback failed: %w", solveErr, pinvErr)
	}
	delta, err = pinv.MulVec(system.G(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("linalg.SolveSparse: pseudo-inverse apply: %w", err)
	}

	return delta, "Bad Hessian matrix!", nil
}
