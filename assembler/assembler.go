package assembler

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/kernel"
	"github.com/katalvlaran/posegraph/linalg"
)

// Assemble linearizes every edge in g at its current vertex estimates and
// accumulates the kernel-reweighted normal-equation system into a fresh
// linalg.BlockSystem, along with the total score (sum of per-edge kernel
// losses). Damping (g.Damping()) is applied to the diagonal after
// accumulation, before the caller hands the system to linalg.Solve /
// linalg.SolveSparse.
func Assemble(g *graph.Graph, opts ...Option) (*linalg.BlockSystem, float64, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	system := linalg.NewBlockSystem(g.ParamSize())
	for idx, v := range g.Vertices() {
		if g.Free(idx) {
			system.RegisterVertex(idx, g.Offset(idx), v.Dim())
		}
	}

	var score float64
	var err error
	if o.Parallel > 1 {
		score, err = accumulateParallel(g, system, o.Parallel)
	} else {
		score, err = accumulate(g, system, g.Edges())
	}
	if err != nil {
		return nil, 0, err
	}

	system.AddDiagonal(g.Damping())

	return system, score, nil
}

// accumulate walks edges in order and folds each edge's contribution into
// system, returning the accumulated score. Sequential accumulation is what
// gives insertion-order-stable results.
func accumulate(g *graph.Graph, system *linalg.BlockSystem, edges []graph.Edge) (float64, error) {
	vertices := g.Vertices()
	var score float64
	for edgeIdx, e := range edges {
		s, err := accumulateOne(g, system, vertices, e)
		if err != nil {
			return 0, fmt.Errorf("assembler: edge %d: %w", edgeIdx, err)
		}
		score += s
	}

	return score, nil
}

// accumulateParallel partitions edges into n contiguous chunks, runs
// accumulate independently into a per-chunk scratch BlockSystem sized the
// same as system, and reduces into system under mu. The chunking is
// deterministic (contiguous ranges of the edge slice), but goroutine
// completion order is not, so the *order of floating-point additions*
// across chunks is not guaranteed to match the sequential path bit-for-bit
// — only their sum, up to ordinary float64 reassociation.
func accumulateParallel(g *graph.Graph, system *linalg.BlockSystem, n int) (float64, error) {
	edges := g.Edges()
	if n > len(edges) {
		n = len(edges)
	}
	if n <= 1 || len(edges) == 0 {
		return accumulate(g, system, edges)
	}

	chunk := (len(edges) + n - 1) / n
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		total    float64
	)
	for start := 0; start < len(edges); start += chunk {
		end := start + chunk
		if end > len(edges) {
			end = len(edges)
		}
		wg.Add(1)
		go func(part []graph.Edge) {
			defer wg.Done()
			scratch := linalg.NewBlockSystem(system.ParamSize())
			for idx, v := range g.Vertices() {
				if g.Free(idx) {
					scratch.RegisterVertex(idx, g.Offset(idx), v.Dim())
				}
			}
			s, err := accumulate(g, scratch, part)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}

				return
			}
			total += s
			mergeInto(system, scratch)
		}(edges[start:end])
	}
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}

	return total, nil
}

// mergeInto adds every block and gradient entry of src into dst.
func mergeInto(dst, src *linalg.BlockSystem) {
	for _, pair := range src.BlockPairs() {
		b, ok := src.Block(pair[0], pair[1])
		if !ok {
			continue
		}
		_ = dst.AddBlock(pair[0], pair[1], b)
	}
	srcG := src.G()
	dstG := dst.G()
	for i, v := range srcG {
		dstG[i] += v
	}
}

// accumulateOne computes one edge's residual/Jacobian, resolves its kernel,
// and folds the kernel-reweighted contribution into system. Only free
// vertices receive H/g blocks; a constant vertex's current value still
// enters the residual (and so the score and kernel weight), but its
// Jacobian block is only shape-checked and never accumulated, and it is
// excluded from RegisterVertex, so AddBlock/AddG never reference it.
func accumulateOne(g *graph.Graph, system *linalg.BlockSystem, vertices []graph.Vertex, e graph.Edge) (float64, error) {
	link := e.Link()
	vs := make([]graph.Vertex, len(link))
	for i, idx := range link {
		vs[i] = vertices[idx]
	}

	r, J, err := e.Residual(vs)
	if err != nil {
		return 0, err
	}
	info := e.Information()
	if info.Rows() != len(r) {
		return 0, fmt.Errorf("%w: residual dim %d, information %dx%d", ErrResidualDimMismatch, len(r), info.Rows(), info.Cols())
	}

	omegaR, err := info.MulVec(r, nil)
	if err != nil {
		return 0, err
	}
	var e2 float64
	for i, v := range r {
		e2 += v * omegaR[i]
	}

	k := kernel.Resolve(e.Kernel())
	rho, w := k.Apply(e2)

	for a, idxA := range link {
		if len(J) <= a || J[a] == nil {
			continue
		}
		if len(J[a]) != len(r) {
			return 0, fmt.Errorf("%w: edge jacobian block %d has %d rows, residual has %d", ErrResidualDimMismatch, a, len(J[a]), len(r))
		}
		dimA := vertices[idxA].Dim()
		if len(J[a][0]) != dimA {
			return 0, fmt.Errorf("%w: edge jacobian block %d has %d cols, vertex dim %d", ErrJacobianColMismatch, a, len(J[a][0]), dimA)
		}

		jtOmega, err := transposeMulInfo(J[a], info)
		if err != nil {
			return 0, err
		}

		if g.Free(idxA) {
			grad := make([]float64, dimA)
			for i := 0; i < dimA; i++ {
				var sum float64
				for k2, rv := range r {
					sum += jtOmega[i][k2] * rv
				}
				grad[i] = w * sum
			}
			if err := system.AddG(idxA, grad); err != nil {
				return 0, err
			}
		}

		for b := a; b < len(link); b++ {
			idxB := link[b]
			if !g.Free(idxA) || !g.Free(idxB) {
				continue
			}
			if len(J) <= b || J[b] == nil {
				continue
			}
			dimB := vertices[idxB].Dim()
			block, err := blockMul(jtOmega, J[b], w, dimA, dimB)
			if err != nil {
				return 0, err
			}
			if err := system.AddBlock(idxA, idxB, block); err != nil {
				return 0, err
			}
		}
	}

	return rho, nil
}

// transposeMulInfo computes J^T * Omega for J (rows x cols) and Omega
// (rows x rows), returning a cols x rows plain matrix.
func transposeMulInfo(J [][]float64, info *linalg.Dense) ([][]float64, error) {
	rows := len(J)
	if rows == 0 {
		return nil, nil
	}
	cols := len(J[0])
	infoRows, infoCols := info.Dims()
	if infoRows != rows || infoCols != rows {
		return nil, fmt.Errorf("%w: information %dx%d, residual dim %d", ErrResidualDimMismatch, infoRows, infoCols, rows)
	}

	out := make([][]float64, cols)
	for i := range out {
		out[i] = make([]float64, rows)
		for k := 0; k < rows; k++ {
			var sum float64
			for m := 0; m < rows; m++ {
				omega, _ := info.At(m, k)
				sum += J[m][i] * omega
			}
			out[i][k] = sum
		}
	}

	return out, nil
}

// blockMul computes w * jtOmega * Jb, where jtOmega is dimA x residualDim
// and Jb is residualDim x dimB, returning a *linalg.Dense of size dimA x
// dimB.
func blockMul(jtOmega, Jb [][]float64, w float64, dimA, dimB int) (*linalg.Dense, error) {
	out, err := linalg.NewDense(dimA, dimB)
	if err != nil {
		return nil, err
	}
	residualDim := len(jtOmega[0])
	for i := 0; i < dimA; i++ {
		for j := 0; j < dimB; j++ {
			var sum float64
			for k := 0; k < residualDim; k++ {
				sum += jtOmega[i][k] * Jb[k][j]
			}
			_ = out.Set(i, j, w*sum)
		}
	}

	return out, nil
}
