// Package linalg provides the dense matrix type, the Doolittle-LU/Jacobi-
// eigen numeric kernels in linalg/ops, and the block-sparse Solver façade
// the assembler and solver packages build their normal-equation system on
// top of.
//
// Dense is adapted from lvlath's matrix.Dense (same flat row-major storage,
// same bounds-checked accessor style). BlockSystem is new: a block-sparse
// accumulator keyed by vertex-index pairs, matching graph's co-occurrence
// adjacency, with a Densify path for the small-to-medium dense solve and a
// direct gonum/linsolve.MulVecToer implementation for the sparse iterative
// path, so large problems never materialize a dense H.
package linalg
