package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/posegraph/assembler"
	"github.com/katalvlaran/posegraph/graph"
	"github.com/katalvlaran/posegraph/linalg"
	"github.com/katalvlaran/posegraph/report"
)

// minIterBeforeConvergence is the minimum number of completed iterations
// (iter > 5, i.e. 6 iterations have run) before the plateau test is allowed
// to terminate the loop, so a single lucky early step cannot be mistaken
// for convergence.
const minIterBeforeConvergence = 5

// Solve runs the Gauss-Newton iteration to convergence against g, mutating
// every free vertex in place, and returns a diagnostic Report.
//
// Each iteration: Linearize (assembler.Assemble) → Solve (linalg.Solve or
// linalg.SolveSparse, depending on g.Sparse()) → Step-limit → Update every
// free vertex, then test for convergence (iter > 5 and the improvement in
// score over the previous iteration is below MinScoreChange). The
// convergence test is evaluated against the score from *before* this
// iteration's update — so the Report's TotalError reflects the
// last-linearized score, one update behind the vertex values Solve leaves
// in place. This is intentional: re-evaluating the post-update score would
// cost one extra linearization per Solve call for a property (a perfectly
// fresh TotalError) nothing downstream depends on.
//
// An empty graph (ParamSize() == 0, including an all-constant graph)
// returns immediately after a single linearization, with a Report of that
// linearization's score and no diagnostics.
func Solve(g *graph.Graph, opts ...Option) (*report.Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Damping != nil {
		g.SetDamping(*o.Damping)
	}
	if o.Sparse != nil {
		g.SetSparse(*o.Sparse)
	}

	if g.ParamSize() == 0 {
		_, score, err := assembler.Assemble(g)
		if err != nil {
			return nil, fmt.Errorf("solver: linearize: %w", err)
		}

		return report.Build(g, score, nil), nil
	}

	var diagnostics []string
	prevScore := math.Inf(1)
	iter := 0

	for {
		system, score, err := assembler.Assemble(g)
		if err != nil {
			return nil, fmt.Errorf("solver: linearize: %w", err)
		}

		delta, diag, err := solveOnce(g, system, o)
		if err != nil {
			return nil, fmt.Errorf("solver: solve: %w", err)
		}
		if diag != "" {
			diagnostics = append(diagnostics, diag)
		}

		// linalg.Solve(System) solves H*x = g; the Gauss-Newton step is
		// x -= H^-1*g, so the sign is flipped here before it is ever used.
		for i := range delta {
			delta[i] = -delta[i]
		}

		clipStep(delta, o.StepLimit)

		if o.ShowInfo {
			fmt.Fprintf(o.Writer, "iter %d: %f\n", iter, score)
		}

		converged := iter > minIterBeforeConvergence && prevScore-score < o.MinScoreChange

		if err := applyUpdate(g, delta); err != nil {
			return nil, fmt.Errorf("solver: update: %w", err)
		}

		prevScore = score
		iter++

		if converged {
			return report.Build(g, score, diagnostics), nil
		}
	}
}

// solveOnce dispatches to the dense or sparse linear-solve path, per
// g.Sparse().
func solveOnce(g *graph.Graph, system *linalg.BlockSystem, o Options) ([]float64, string, error) {
	if g.Sparse() {
		return linalg.SolveSparse(system, o.SparseTol, o.SparseMaxIter)
	}

	return linalg.Solve(system)
}

// clipStep rescales delta in place so that max(|delta_i|) == limit,
// whenever it currently exceeds limit. limit <= 0 disables clipping. This
// scales by the absolute-value max, not the signed max, since a signed-max
// scale factor can be negative (or simply the wrong component) whenever
// every entry of delta is negative.
func clipStep(delta []float64, limit float64) {
	if limit <= 0 {
		return
	}
	maxAbs := 0.0
	for _, d := range delta {
		if a := math.Abs(d); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs <= limit || maxAbs == 0 {
		return
	}
	scale := limit / maxAbs
	for i := range delta {
		delta[i] *= scale
	}
}

// applyUpdate hands each free vertex its slice of delta, in vertex-index
// order; constant vertices are skipped entirely; they never see Update
// called.
func applyUpdate(g *graph.Graph, delta []float64) error {
	for idx, v := range g.Vertices() {
		if !g.Free(idx) {
			continue
		}
		off := g.Offset(idx)
		dim := v.Dim()
		if err := v.Update(delta[off : off+dim]); err != nil {
			return fmt.Errorf("solver: vertex %d update: %w", idx, err)
		}
	}

	return nil
}
