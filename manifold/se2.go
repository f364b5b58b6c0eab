package manifold

import "math"

// SE2 is a 2D rigid transform: a rotation angle theta and translation (x, y).
type SE2 struct {
	C, S float64 // cos(theta), sin(theta)
	X, Y float64
}

// IdentitySE2 returns the identity transform.
func IdentitySE2() SE2 {
	return SE2{C: 1, S: 0, X: 0, Y: 0}
}

// NewSE2 builds an SE2 from an angle and translation.
func NewSE2(theta, x, y float64) SE2 {
	return SE2{C: math.Cos(theta), S: math.Sin(theta), X: x, Y: y}
}

// Theta recovers the rotation angle via atan2(S, C).
func (a SE2) Theta() float64 {
	return math.Atan2(a.S, a.C)
}

// Mul composes two transforms: (a.Mul(b)) applies b first, then a.
func (a SE2) Mul(b SE2) SE2 {
	return SE2{
		C: a.C*b.C - a.S*b.S,
		S: a.S*b.C + a.C*b.S,
		X: a.C*b.X - a.S*b.Y + a.X,
		Y: a.S*b.X + a.C*b.Y + a.Y,
	}
}

// Inv returns the inverse transform.
func (a SE2) Inv() SE2 {
	return SE2{
		C: a.C,
		S: -a.S,
		X: -(a.C*a.X + a.S*a.Y),
		Y: -(-a.S*a.X + a.C*a.Y),
	}
}

// ExpSE2 maps a 3-vector tangent xi = [rho(0:2), phi(2)] to an SE2
// transform, via T = (Exp(phi), V(phi)*rho) with
//
//	V = [[A, -B], [B, A]], A = sin(theta)/theta, B = (1-cos(theta))/theta
//
// falling back to the small-angle limits A->1, B->theta/2 near theta=0.
func ExpSE2(xi [3]float64) SE2 {
	rho := [2]float64{xi[0], xi[1]}
	theta := xi[2]
	var a, b float64
	if math.Abs(theta) < angleEps {
		a, b = 1, theta/2
	} else {
		a, b = math.Sin(theta)/theta, (1-math.Cos(theta))/theta
	}
	x := a*rho[0] - b*rho[1]
	y := b*rho[0] + a*rho[1]

	return NewSE2(theta, x, y)
}

// LogSE2 maps an SE2 transform to its 3-vector tangent xi = [rho, phi],
// using V(phi)^-1 = (1/(A^2+B^2)) * [[A, B], [-B, A]].
func LogSE2(T SE2) [3]float64 {
	theta := T.Theta()
	var a, b float64
	if math.Abs(theta) < angleEps {
		a, b = 1, theta/2
	} else {
		a, b = math.Sin(theta)/theta, (1-math.Cos(theta))/theta
	}
	den := a*a + b*b
	rx := (a*T.X + b*T.Y) / den
	ry := (-b*T.X + a*T.Y) / den

	return [3]float64{rx, ry, theta}
}

// AdjointSE2 returns the 3x3 adjoint matrix of T under the [rho, phi]
// tangent ordering:
//
//	Ad(T) = [[R, skew(t)], [0, 1]]
//
// where skew(t) for SE(2) is the column [y, -x] (the 2D analogue of the
// cross-product generator), and R is the 2x2 rotation block of T.
func AdjointSE2(T SE2) [3][3]float64 {
	return [3][3]float64{
		{T.C, -T.S, T.Y},
		{T.S, T.C, -T.X},
		{0, 0, 1},
	}
}
