// Package solver drives the Gauss-Newton iteration over a factor graph:
// linearize (assembler.Assemble), solve the normal equations (linalg.Solve
// / linalg.SolveSparse), clip the step, test for convergence, and apply the
// update to every free vertex — looping until the score plateaus.
//
// Solve never mutates constant vertices and never panics on a singular or
// indefinite Hessian: that case is recovered via the pseudo-inverse
// fallback inside linalg and surfaced as a "Bad Hessian matrix!" diagnostic
// on the returned report.Report, exactly like every other numerical
// recovery path in this module.
package solver
