// Package assembler builds the normal-equation system (H, g) and the total
// weighted score for a graph.Graph at its current linearization point.
//
// For every edge it evaluates the residual and Jacobian, resolves the
// edge's robust kernel (nil treated as kernel.Identity, never left
// ambiguous), and accumulates the kernel-reweighted contribution
//
//	H[a][b] += w * J_a^T * Omega * J_b
//	g[a]    += w * J_a^T * Omega * r
//	score   += rho
//
// into a linalg.BlockSystem sized to the graph's free parameters, touching
// only the vertex-index pairs the graph's co-occurrence adjacency says
// actually appear together in some edge. A constant vertex's current value
// still enters the residual (a fixed vertex still participates in what an
// edge measures), but its Jacobian block is not accumulated and it never
// receives an H/g block of its own.
package assembler
