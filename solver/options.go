package solver

import (
	"io"
	"os"
)

// Options configures a Solve call.
//
// MinScoreChange – the iteration stops once iter > 5 and the improvement in
// score over the previous iteration falls below this threshold. Default
// 0.01, matching the source's default.
//
// StepLimit – if > 0, any iteration whose step has max(|delta_i|) exceeding
// StepLimit is rescaled uniformly so that max(|delta_i|) == StepLimit. 0
// (the default) disables clipping.
//
// ShowInfo/Writer – when ShowInfo is true, Solve prints one "iter %d: %f\n"
// line per iteration (iteration index, pre-update score) to Writer.
//
// Damping/Sparse – when non-nil, override the Graph's own construction-time
// WithDamping/WithSparse settings for the duration of this Solve call, via
// graph.Graph.SetDamping/SetSparse. Left nil (the default), the Graph's own
// settings are used unchanged.
type Options struct {
	MinScoreChange float64
	StepLimit      float64
	ShowInfo       bool
	Writer         io.Writer

	Damping *float64
	Sparse  *bool

	// SparseTol/SparseMaxIter bound the CG solve used when the effective
	// graph is in sparse mode; ignored in dense mode.
	SparseTol     float64
	SparseMaxIter int
}

// Option is a functional option for Solve.
type Option func(*Options)

// WithMinScoreChange sets the score-plateau threshold used by the
// convergence test.
func WithMinScoreChange(threshold float64) Option {
	return func(o *Options) { o.MinScoreChange = threshold }
}

// WithStepLimit caps each iteration's step by its largest-magnitude
// component, per the corrected (absolute-value) step limiter.
func WithStepLimit(limit float64) Option {
	return func(o *Options) { o.StepLimit = limit }
}

// WithShowInfo enables the per-iteration "iter %d: %f\n" progress line,
// written to w (os.Stdout if w is nil).
func WithShowInfo(w io.Writer) Option {
	return func(o *Options) {
		o.ShowInfo = true
		if w != nil {
			o.Writer = w
		}
	}
}

// WithDamping overrides the graph's Levenberg-style damping coefficient for
// this Solve call.
func WithDamping(lambda float64) Option {
	return func(o *Options) { o.Damping = &lambda }
}

// WithSparse overrides the graph's dense/sparse solve-path selection for
// this Solve call.
func WithSparse(sparse bool) Option {
	return func(o *Options) { o.Sparse = &sparse }
}

// DefaultOptions returns the source's defaults: MinScoreChange 0.01,
// StepLimit disabled, ShowInfo enabled (writing to os.Stdout unless a
// caller supplies its own Writer via WithShowInfo), and a CG
// tolerance/iteration budget suitable for small-to-medium pose graphs.
func DefaultOptions() Options {
	return Options{
		MinScoreChange: 0.01,
		StepLimit:      0,
		ShowInfo:       true,
		Writer:         os.Stdout,
		SparseTol:      1e-8,
		SparseMaxIter:  1000,
	}
}
