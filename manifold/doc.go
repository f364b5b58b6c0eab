// Package manifold implements the SE(3)/SO(3) and SE(2) exponential and
// logarithm maps, the skew-symmetric (hat) operator, and small supporting
// utilities (MakeRt, Adjoint).
//
// This is the "external math collaborator" spec.md §6 describes: the core
// optimization packages (graph, assembler, linalg, solver) never import this
// package directly. Only the concrete vertex/edge implementations in pose3
// and pose2 depend on it, and it is tested entirely on its own round-trip
// and closure properties, independent of any optimization code.
//
// Tangent-vector convention: a 6-vector xi for SE(3) is ordered
// [rho(0:3), phi(3:6)] — rho is the translation generator, phi is the
// rotation generator (so T(xi) = (V(phi)*rho, Exp(phi))). A 3-vector xi for
// SE(2) is ordered [rho(0:2), phi(2)] analogously. This ordering determines
// the block layout of Adjoint and every edge Jacobian built on top of it.
package manifold
