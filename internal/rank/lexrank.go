package rank

import (
	"context"

	"github.com/localrivet/lexsummary/internal/graph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LexRank computes the stationary distribution of a damped random walk over
// the similarity graph by power iteration.
type LexRank struct {
	damping       float64
	epsilon       float64
	maxIterations int
}

// NewLexRank creates a LexRank ranker. Zero option values take defaults.
func NewLexRank(opts Options) *LexRank {
	if opts.Damping <= 0 || opts.Damping > 1 {
		opts.Damping = DefaultDamping
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultEpsilon
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return &LexRank{
		damping:       opts.Damping,
		epsilon:       opts.Epsilon,
		maxIterations: opts.MaxIterations,
	}
}

// Name returns "lexrank".
func (r *LexRank) Name() string {
	return AlgorithmLexRank
}

// Rank runs the power iteration. When the iteration cap is reached first,
// the last iterate is returned together with a *NonConvergenceError.
func (r *LexRank) Rank(ctx context.Context, m *graph.Matrix) (Scores, error) {
	scores, _, err := r.rank(ctx, m)
	return scores, err
}

// RankWithIterations is Rank that also reports the iteration count.
func (r *LexRank) RankWithIterations(ctx context.Context, m *graph.Matrix) (Scores, int, error) {
	return r.rank(ctx, m)
}

func (r *LexRank) rank(ctx context.Context, m *graph.Matrix) (Scores, int, error) {
	n := m.Size()
	switch n {
	case 0:
		return Scores{}, 0, nil
	case 1:
		return Scores{1.0}, 0, nil
	}

	p := r.transition(m)

	cur := mat.NewVecDense(n, uniform(n))
	next := mat.NewVecDense(n, nil)
	delta := 0.0

	for iter := 1; iter <= r.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, iter - 1, err
		}

		next.MulVec(p.T(), cur)
		delta = floats.Distance(next.RawVector().Data, cur.RawVector().Data, 1)
		cur, next = next, cur

		if delta < r.epsilon {
			return normalize(Scores(mat.Col(nil, 0, cur))), iter, nil
		}
	}

	scores := normalize(Scores(mat.Col(nil, 0, cur)))
	return scores, r.maxIterations, &NonConvergenceError{Iterations: r.maxIterations, Delta: delta}
}

// transition builds P = d*RowNorm(S) + (1-d)/N. Rows of S without any edge
// become uniform so the chain stays irreducible.
func (r *LexRank) transition(m *graph.Matrix) *mat.Dense {
	n := m.Size()
	jump := (1 - r.damping) / float64(n)
	p := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		row := m.Row(i)
		sum := floats.Sum(row)
		for j := 0; j < n; j++ {
			walk := 1 / float64(n)
			if sum > 0 {
				walk = row[j] / sum
			}
			p.Set(i, j, r.damping*walk+jump)
		}
	}
	return p
}
