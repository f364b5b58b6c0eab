// Package kernel provides robust loss functions (M-estimators) for reweighting
// squared Mahalanobis error in the normal-equation assembler.
//
// A Kernel maps a non-negative squared error e2 = rᵀΩr to a loss value rho and
// an IRLS weight w = rho'(e2). The assembler only ever needs these two scalars;
// no second-derivative term is formed, which is a standard Gauss-Newton
// approximation and is documented, not hidden, at each implementation.
//
// Contract (all implementations must satisfy):
//
//	Identity (L2):        rho == e2, w == 1.
//	Bounded kernels:       rho <= e2, rho monotone non-decreasing in e2;
//	                       w in (0, 1], w non-increasing in e2.
//
// Complexity: every Apply is O(1).
package kernel
