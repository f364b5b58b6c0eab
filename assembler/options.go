package assembler

// Options configures an Assemble call.
//
// Parallel   – number of goroutines to fan edge evaluation out across; 0 or 1
// means sequential (the default), which is also what guarantees the
// insertion-order-stable accumulation the rest of the module relies on for
// determinism.
type Options struct {
	Parallel int
}

// Option is a functional option for Assemble.
type Option func(*Options)

// WithParallel partitions the edge list into n roughly equal contiguous
// chunks, evaluates each chunk's residuals/Jacobians concurrently, and
// reduces the per-goroutine scratch BlockSystems under a single mutex.
// Reduction order is nondeterministic across goroutines, but addition over
// float64 block entries is commutative up to ordinary floating-point
// reassociation; n <= 1 behaves exactly like sequential Assemble.
func WithParallel(n int) Option {
	return func(o *Options) { o.Parallel = n }
}

// DefaultOptions returns sequential assembly.
func DefaultOptions() Options {
	return Options{Parallel: 0}
}
