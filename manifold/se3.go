package manifold

import "math"

// angleEps is the small-angle threshold below which Taylor-series
// approximations are used in place of the closed-form trigonometric
// expressions, to avoid division by (near) zero.
const angleEps = 1e-8

// SE3 is a 3D rigid transform stored as a row-major 4x4 homogeneous matrix.
// The bottom row is always [0 0 0 1] and is not stored redundantly beyond
// what the flat layout implies; callers construct SE3 only via the
// functions in this package.
type SE3 struct {
	// m holds rows 0..2 of the 4x4 matrix in row-major order: m[4*i+j] is
	// element (i,j) for i in 0..2, j in 0..3. The implicit last row is
	// [0 0 0 1].
	m [12]float64
}

// IdentitySE3 returns the identity transform.
func IdentitySE3() SE3 {
	return SE3{m: [12]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}}
}

// NewSE3 builds an SE3 from a rotation matrix and translation vector.
func NewSE3(R [3][3]float64, t [3]float64) SE3 {
	var T SE3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T.m[4*i+j] = R[i][j]
		}
		T.m[4*i+3] = t[i]
	}

	return T
}

// MakeRt splits T back into its rotation matrix and translation vector.
func MakeRt(T SE3) (R [3][3]float64, t [3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = T.m[4*i+j]
		}
		t[i] = T.m[4*i+3]
	}

	return R, t
}

// Mul composes two transforms: (a.Mul(b)) applies b first, then a.
func (a SE3) Mul(b SE3) SE3 {
	Ra, ta := MakeRt(a)
	Rb, tb := MakeRt(b)
	var Rc [3][3]float64
	var tc [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += Ra[i][k] * Rb[k][j]
			}
			Rc[i][j] = s
		}
		var s float64
		for k := 0; k < 3; k++ {
			s += Ra[i][k] * tb[k]
		}
		tc[i] = s + ta[i]
	}

	return NewSE3(Rc, tc)
}

// Inv returns the inverse transform: R' = Rᵀ, t' = -Rᵀt.
func (a SE3) Inv() SE3 {
	R, t := MakeRt(a)
	var Rt [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Rt[i][j] = R[j][i]
		}
	}
	var ti [3]float64
	for i := 0; i < 3; i++ {
		var s float64
		for k := 0; k < 3; k++ {
			s += Rt[i][k] * t[k]
		}
		ti[i] = -s
	}

	return NewSE3(Rt, ti)
}

// Skew returns the 3x3 skew-symmetric (hat) matrix of v, satisfying
// Skew(v) @ x == v cross x for any x.
func Skew(v [3]float64) [3][3]float64 {
	return [3][3]float64{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

func matMul3(a, b [3][3]float64) [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}

	return c
}

func matAdd3(a, b [3][3]float64, sb float64) [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][j] + sb*b[i][j]
		}
	}

	return c
}

func identity3() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// ExpSO3 computes the Rodrigues rotation matrix for a rotation vector phi.
func ExpSO3(phi [3]float64) [3][3]float64 {
	theta := math.Sqrt(phi[0]*phi[0] + phi[1]*phi[1] + phi[2]*phi[2])
	K := Skew(phi)
	if theta < angleEps {
		// R ~= I + K (first-order); K already carries the theta scale.
		return matAdd3(identity3(), K, 1)
	}
	Kn := Skew([3]float64{phi[0] / theta, phi[1] / theta, phi[2] / theta})
	K2 := matMul3(Kn, Kn)
	R := matAdd3(identity3(), Kn, math.Sin(theta))
	R = matAdd3(R, K2, 1-math.Cos(theta))

	return R
}

// LogSO3 computes the rotation vector phi such that ExpSO3(phi) == R.
func LogSO3(R [3][3]float64) [3]float64 {
	cosTheta := (R[0][0] + R[1][1] + R[2][2] - 1) / 2
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	theta := math.Acos(cosTheta)
	if theta < angleEps {
		// vee(R - Rᵀ)/2 at first order.
		return [3]float64{
			(R[2][1] - R[1][2]) / 2,
			(R[0][2] - R[2][0]) / 2,
			(R[1][0] - R[0][1]) / 2,
		}
	}
	scale := theta / (2 * math.Sin(theta))

	return [3]float64{
		scale * (R[2][1] - R[1][2]),
		scale * (R[0][2] - R[2][0]),
		scale * (R[1][0] - R[0][1]),
	}
}

// leftJacobianSO3 computes V(phi), the left Jacobian of SO(3), used to map
// the translation generator rho onto the actual translation t = V(phi)*rho.
func leftJacobianSO3(phi [3]float64) [3][3]float64 {
	theta := math.Sqrt(phi[0]*phi[0] + phi[1]*phi[1] + phi[2]*phi[2])
	K := Skew(phi)
	if theta < angleEps {
		// V ~= I + K/2 (first-order).
		return matAdd3(identity3(), K, 0.5)
	}
	Kn := Skew([3]float64{phi[0] / theta, phi[1] / theta, phi[2] / theta})
	K2 := matMul3(Kn, Kn)
	a := (1 - math.Cos(theta)) / theta
	b := (theta - math.Sin(theta)) / theta
	V := matAdd3(identity3(), Kn, a)
	V = matAdd3(V, K2, b)

	return V
}

// leftJacobianInvSO3 computes V(phi)^-1.
func leftJacobianInvSO3(phi [3]float64) [3][3]float64 {
	theta := math.Sqrt(phi[0]*phi[0] + phi[1]*phi[1] + phi[2]*phi[2])
	K := Skew(phi)
	if theta < angleEps {
		// V^-1 ~= I - K/2 (first-order).
		return matAdd3(identity3(), K, -0.5)
	}
	Kn := Skew([3]float64{phi[0] / theta, phi[1] / theta, phi[2] / theta})
	K2 := matMul3(Kn, Kn)
	halfTheta := theta / 2
	cot := math.Cos(halfTheta) / math.Sin(halfTheta)
	c := 1 - (halfTheta*cot)
	Vi := matAdd3(identity3(), K, -0.5)
	Vi = matAdd3(Vi, K2, c)

	return Vi
}

// ExpSE3 maps a 6-vector tangent xi = [rho(0:3), phi(3:6)] to an SE3
// transform via T = (Exp(phi), V(phi)*rho).
func ExpSE3(xi [6]float64) SE3 {
	rho := [3]float64{xi[0], xi[1], xi[2]}
	phi := [3]float64{xi[3], xi[4], xi[5]}
	R := ExpSO3(phi)
	V := leftJacobianSO3(phi)
	var t [3]float64
	for i := 0; i < 3; i++ {
		t[i] = V[i][0]*rho[0] + V[i][1]*rho[1] + V[i][2]*rho[2]
	}

	return NewSE3(R, t)
}

// LogSE3 maps an SE3 transform to its 6-vector tangent xi = [rho, phi].
func LogSE3(T SE3) [6]float64 {
	R, t := MakeRt(T)
	phi := LogSO3(R)
	Vi := leftJacobianInvSO3(phi)
	var rho [3]float64
	for i := 0; i < 3; i++ {
		rho[i] = Vi[i][0]*t[0] + Vi[i][1]*t[1] + Vi[i][2]*t[2]
	}

	return [6]float64{rho[0], rho[1], rho[2], phi[0], phi[1], phi[2]}
}

// AdjointSE3 returns the 6x6 adjoint matrix of T, under the [rho, phi]
// tangent ordering:
//
//	Ad(T) = [[R, skew(t)@R], [0, R]]
//
// so that xi' = Ad(T) @ xi satisfies Exp(xi') @ T == T @ Exp(xi) to first
// order. This is exactly the matrix the between-edge Jacobian is built from.
func AdjointSE3(T SE3) [6][6]float64 {
	R, t := MakeRt(T)
	tR := matMul3(Skew(t), R)
	var Ad [6][6]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Ad[i][j] = R[i][j]
			Ad[i][j+3] = tR[i][j]
			Ad[i+3][j+3] = R[i][j]
		}
	}

	return Ad
}
