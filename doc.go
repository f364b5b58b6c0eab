// Package posegraph is a nonlinear least-squares solver over a factor
// graph of manifold-valued variables — the Gauss-Newton engine behind
// SLAM-style pose-graph optimization.
//
// A Graph (package graph) holds vertices (manifold-valued unknowns: an
// SE(3)/SE(2) pose, or a Euclidean landmark) and edges (measurements: a
// prior pinning a single vertex, a between-constraint relating two poses,
// or a landmark sighting relating a pose to a point). Each edge knows how
// to compute its residual and Jacobian blocks against the vertices it
// touches; package assembler accumulates those into a block-sparse normal
// equation, package linalg solves it (dense LU with a pseudo-inverse
// fallback, or iterative CG for large sparse systems), and package solver
// drives the Gauss-Newton iteration to convergence.
//
// Under the hood, everything is organized into subpackages:
//
//	manifold/  — SE(3)/SE(2) exponential, logarithm, and adjoint maps
//	graph/     — Vertex/Edge containers and free/constant bookkeeping
//	kernel/    — robust loss functions (Huber, Cauchy) for outlier edges
//	linalg/    — block-sparse normal equations and the linear solve
//	assembler/ — builds the normal equations from a Graph's edges
//	solver/    — the Gauss-Newton iteration driver
//	report/    — post-solve diagnostics (per-edge-type error breakdown)
//	pose3/     — SE(3) vertex and edge types (prior, between, landmark)
//	pose2/     — SE(2) vertex and between-edge type
//
// The solver package's scenario tests build and solve a complete SE(3)
// loop-closure graph.
package posegraph
