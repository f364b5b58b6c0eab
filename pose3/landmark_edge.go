package pose3

import (
	"fmt"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/manifold"
)

// Landmark is a Euclidean 3-vector, retracted by ordinary addition. It
// supplements the pose-only worked example with a mixed-dimension vertex
// type, so a pose<->landmark edge exercises the assembler's per-vertex
// block sizing beyond a uniform-dimension chain.
type Landmark struct {
	p [3]float64
}

// NewLandmark wraps an initial world-frame position estimate.
func NewLandmark(p [3]float64) *Landmark { return &Landmark{p: p} }

// Position returns the landmark's current estimate.
func (l *Landmark) Position() [3]float64 { return l.p }

// Dim implements graph.Vertex.
func (l *Landmark) Dim() int { return 3 }

// Update implements graph.Vertex: ordinary vector addition.
func (l *Landmark) Update(delta []float64) error {
	if len(delta) != 3 {
		return fmt.Errorf("pose3.Landmark.Update: len(delta)=%d, want 3", len(delta))
	}
	l.p[0] += delta[0]
	l.p[1] += delta[1]
	l.p[2] += delta[2]

	return nil
}

// LandmarkEdge constrains a pose's relative-position measurement of a
// landmark: r = Rᵀ(l - t) - z, where (R, t) is the pose and z is the
// landmark's position measured in the pose's local frame.
type LandmarkEdge struct {
	link   [2]int // [poseIdx, landmarkIdx]
	z      [3]float64
	info   *linalg.Dense
	kernel kernel.Kernel
}

// NewLandmarkEdge constrains landmark landmarkIdx's position, as measured
// in poseIdx's local frame, to z.
func NewLandmarkEdge(poseIdx, landmarkIdx int, z [3]float64, info *linalg.Dense, k kernel.Kernel) *LandmarkEdge {
	return &LandmarkEdge{link: [2]int{poseIdx, landmarkIdx}, z: z, info: info, kernel: k}
}

func (e *LandmarkEdge) Arity() int                { return 2 }
func (e *LandmarkEdge) Link() []int               { return e.link[:] }
func (e *LandmarkEdge) Information() *linalg.Dense { return e.info }
func (e *LandmarkEdge) Kernel() kernel.Kernel      { return e.kernel }

// Residual implements graph.Edge.
//
// With the pose perturbed on the right (T' = T.Exp(xi), xi = [rho, phi])
// and the landmark perturbed by ordinary addition (l' = l + dl):
//
//	r(T', l') ≈ r(T, l) - dl_rho_term - skew(p_local)·(-phi) ...
//
// Expanding to first order (p_local = Rᵀ(l - t)):
//
//	dr/drho = -I, dr/dphi = skew(p_local), dr/dl = Rᵀ
//
// so J0 (pose, 3x6) = [-I | skew(p_local)] and J1 (landmark, 3x3) = Rᵀ.
func (e *LandmarkEdge) Residual(vs []graph.Vertex) ([]float64, [][][]float64, error) {
	pose, ok0 := vs[0].(*Vertex)
	lm, ok1 := vs[1].(*Landmark)
	if !ok0 || !ok1 {
		return nil, nil, fmt.Errorf("pose3.LandmarkEdge: vertices are not (*pose3.Vertex, *pose3.Landmark)")
	}
	R, t := manifold.MakeRt(pose.Pose())
	l := lm.Position()
	var diff [3]float64
	for i := 0; i < 3; i++ {
		diff[i] = l[i] - t[i]
	}
	var pLocal [3]float64
	for i := 0; i < 3; i++ {
		var s float64
		for k := 0; k < 3; k++ {
			s += R[k][i] * diff[k] // Rᵀ * diff
		}
		pLocal[i] = s
	}
	r := []float64{pLocal[0] - e.z[0], pLocal[1] - e.z[1], pLocal[2] - e.z[2]}

	skewP := manifold.Skew(pLocal)
	J0 := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		J0[i] = make([]float64, 6)
		J0[i][i] = -1
		J0[i][3] = skewP[i][0]
		J0[i][4] = skewP[i][1]
		J0[i][5] = skewP[i][2]
	}

	J1 := make([][]float64, 3)
	for i := 0; i < 3; i++ {
		J1[i] = make([]float64, 3)
		for j := 0; j < 3; j++ {
			J1[i][j] = R[j][i] // Rᵀ
		}
	}

	return r, [][][]float64{J0, J1}, nil
}
