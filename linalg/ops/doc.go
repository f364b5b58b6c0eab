// Package ops provides the dense numeric kernels linalg.Solve and
// linalg.SolveSparse build on:
// Doolittle LU decomposition, LU-based matrix inversion, and Jacobi
// eigenvalue decomposition of symmetric matrices. Adapted from lvlath's
// matrix/ops package, generalized to operate on linalg.Dense directly
// instead of the matrix.Matrix interface (this module has only the one
// concrete dense type, so the extra interface layer is unneeded here).
package ops
