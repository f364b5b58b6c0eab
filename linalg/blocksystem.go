package linalg

import "fmt"

// BlockSystem is a block-sparse accumulator for the normal-equation system
// H*delta = g, keyed by the same vertex-index pairs as graph's
// co-occurrence adjacency. Only (i,j) pairs that actually co-occur in some
// edge ever get a block allocated, so the storage is proportional to the
// number of distinct vertex-pairs touched by edges, not to psize^2.
type BlockSystem struct {
	psize int

	// blockOffset[i] is the row/col offset of vertex i's block within the
	// flattened parameter vector; blockDim[i] is its width.
	blockOffset map[int]int
	blockDim    map[int]int

	// H[[2]int{i,j}] (i<=j) is the (blockDim[i] x blockDim[j]) contribution
	// of vertex-pair (i,j) to the Hessian approximation.
	H map[[2]int]*Dense

	// g is the dense gradient vector, length psize; the gradient is never
	// block-sparse in practice (every free vertex contributes some nonzero
	// slice), so it is stored flat.
	g []float64
}

// NewBlockSystem allocates an empty system over a parameter vector of size
// psize.
func NewBlockSystem(psize int) *BlockSystem {
	return &BlockSystem{
		psize:       psize,
		blockOffset: make(map[int]int),
		blockDim:    make(map[int]int),
		H:           make(map[[2]int]*Dense),
		g:           make([]float64, psize),
	}
}

// RegisterVertex declares that free vertex idx occupies [offset,
// offset+dim) in the flattened parameter vector. Must be called once per
// free vertex before AddBlock references it.
func (bs *BlockSystem) RegisterVertex(idx, offset, dim int) {
	bs.blockOffset[idx] = offset
	bs.blockDim[idx] = dim
}

// ParamSize returns psize.
func (bs *BlockSystem) ParamSize() int { return bs.psize }

// block returns (allocating if necessary) the Dense block for vertex pair
// (i,j), i<=j, sized blockDim[i] x blockDim[j].
func (bs *BlockSystem) block(i, j int) (*Dense, error) {
	key := [2]int{i, j}
	if b, ok := bs.H[key]; ok {
		return b, nil
	}
	di, ok1 := bs.blockDim[i]
	dj, ok2 := bs.blockDim[j]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("linalg: block(%d,%d): vertex not registered", i, j)
	}
	b, err := NewDense(di, dj)
	if err != nil {
		return nil, err
	}
	bs.H[key] = b

	return b, nil
}

// Block returns the existing (i,j) block (i<=j) and true, or (nil, false)
// if no edge has contributed to that pair yet.
func (bs *BlockSystem) Block(i, j int) (*Dense, bool) {
	if i > j {
		i, j = j, i
	}
	b, ok := bs.H[[2]int{i, j}]

	return b, ok
}

// BlockPairs returns every (i,j) vertex-index pair (i<=j) that currently has
// an allocated block, in no particular order.
func (bs *BlockSystem) BlockPairs() [][2]int {
	pairs := make([][2]int, 0, len(bs.H))
	for key := range bs.H {
		pairs = append(pairs, key)
	}

	return pairs
}

// AddBlock accumulates contrib into the (i,j) block; i and j may be passed
// in either order, since H is symmetric and only the canonical i<=j key is
// ever stored. When i > j, contrib is the (i,j) block and is transposed
// into the stored (j,i) block.
func (bs *BlockSystem) AddBlock(i, j int, contrib *Dense) error {
	transpose := i > j
	if transpose {
		i, j = j, i
	}
	b, err := bs.block(i, j)
	if err != nil {
		return err
	}
	r, c := contrib.Dims()
	if transpose {
		r, c = c, r
	}
	br, bc := b.Dims()
	if r != br || c != bc {
		return fmt.Errorf("linalg: AddBlock(%d,%d): shape %dx%d, want %dx%d: %w", i, j, r, c, br, bc, ErrDimensionMismatch)
	}
	for a := 0; a < r; a++ {
		for bb := 0; bb < c; bb++ {
			var v float64
			if transpose {
				v, _ = contrib.At(bb, a)
			} else {
				v, _ = contrib.At(a, bb)
			}
			_ = b.Add(a, bb, v)
		}
	}

	return nil
}

// AddDiagonal adds lambda to every diagonal entry of the flattened H
// (Levenberg-style damping) for every registered vertex, allocating its
// diagonal block if no edge has contributed one yet. lambda <= 0 is a no-op.
func (bs *BlockSystem) AddDiagonal(lambda float64) {
	if lambda <= 0 {
		return
	}
	for idx, dim := range bs.blockDim {
		b, err := bs.block(idx, idx)
		if err != nil {
			continue
		}
		for k := 0; k < dim; k++ {
			_ = b.Add(k, k, lambda)
		}
	}
}

// AddG accumulates contrib (length blockDim[i]) into g's slice for vertex i.
func (bs *BlockSystem) AddG(i int, contrib []float64) error {
	off, ok := bs.blockOffset[i]
	if !ok {
		return fmt.Errorf("linalg: AddG(%d): vertex not registered", i)
	}
	if len(contrib) != bs.blockDim[i] {
		return fmt.Errorf("linalg: AddG(%d): len=%d, want %d: %w", i, len(contrib), bs.blockDim[i], ErrDimensionMismatch)
	}
	for k, v := range contrib {
		bs.g[off+k] += v
	}

	return nil
}

// G returns the flattened gradient vector. The returned slice is shared
// with internal storage and must be treated as read-only.
func (bs *BlockSystem) G() []float64 { return bs.g }

// Densify materializes the block-sparse H into a full psize x psize Dense
// matrix, for the dense solve path. Vertex pairs with no block are left
// zero.
func (bs *BlockSystem) Densify() (*Dense, error) {
	H, err := NewDense(bs.psize, bs.psize)
	if err != nil {
		return nil, err
	}
	for key, b := range bs.H {
		i, j := key[0], key[1]
		oi, oj := bs.blockOffset[i], bs.blockOffset[j]
		r, c := b.Dims()
		for a := 0; a < r; a++ {
			for bb := 0; bb < c; bb++ {
				v, _ := b.At(a, bb)
				_ = H.Set(oi+a, oj+bb, v)
				if oi+a != oj+bb {
					_ = H.Set(oj+bb, oi+a, v)
				}
			}
		}
	}

	return H, nil
}

// MulVecTo implements gonum.org/v1/gonum/linsolve.MulVecToer directly
// against the block-sparse storage: dst = H*x (H is symmetric, so trans is
// ignored). This lets the sparse iterative solver run without ever
// densifying H.
func (bs *BlockSystem) MulVecTo(dst []float64, _ bool, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for key, b := range bs.H {
		i, j := key[0], key[1]
		oi, oj := bs.blockOffset[i], bs.blockOffset[j]
		r, c := b.Dims()
		for a := 0; a < r; a++ {
			var sum float64
			for bb := 0; bb < c; bb++ {
				v, _ := b.At(a, bb)
				sum += v * x[oj+bb]
			}
			dst[oi+a] += sum
		}
		if i != j {
			for bb := 0; bb < c; bb++ {
				var sum float64
				for a := 0; a < r; a++ {
					v, _ := b.At(a, bb)
					sum += v * x[oi+a]
				}
				dst[oj+bb] += sum
			}
		}
	}
}

// DiagonalPreconditioner returns the diagonal of H (one entry per parameter
// slot), for use as a Jacobi preconditioner in the sparse CG solve. Entries
// for vertices with no diagonal block are left at 0, which the caller must
// guard against (division by a zero preconditioner entry is undefined).
func (bs *BlockSystem) DiagonalPreconditioner() []float64 {
	diag := make([]float64, bs.psize)
	for idx, dim := range bs.blockDim {
		b, ok := bs.H[[2]int{idx, idx}]
		if !ok {
			continue
		}
		off := bs.blockOffset[idx]
		for k := 0; k < dim; k++ {
			v, _ := b.At(k, k)
			diag[off+k] = v
		}
	}

	return diag
}
