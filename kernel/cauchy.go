package kernel

import "math"

// Cauchy is the Cauchy (Lorentzian) robust loss, parameterized by the
// squared-error scale C (commonly written c^2 in the literature).
//
// It falls off faster than Huber for large errors, at the cost of being
// non-convex, which the Gauss-Newton approximation used here (first
// derivative only, no second-order rho'' term) tolerates but a full Newton
// solver would need to account for.
type Cauchy struct {
	// C is the squared-error scale; must be > 0.
	C float64
}

// Apply implements Kernel.
//
//	rho = C * ln(1 + e2/C)
//	w   = 1 / (1 + e2/C)
func (c Cauchy) Apply(e2 float64) (rho, w float64) {
	ratio := e2 / c.C
	rho = c.C * math.Log1p(ratio)
	w = 1 / (1 + ratio)

	return rho, w
}
