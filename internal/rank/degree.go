package rank

import (
	"context"

	"github.com/localrivet/lexsummary/internal/graph"
)

// Degree scores each sentence by the number of edges it has in the
// thresholded similarity graph. It needs no iteration.
type Degree struct{}

// NewDegree creates a degree-centrality ranker.
func NewDegree() *Degree {
	return &Degree{}
}

// Name returns "degree".
func (d *Degree) Name() string {
	return AlgorithmDegree
}

// Rank returns normalized degrees; a graph without edges scores uniformly.
func (d *Degree) Rank(ctx context.Context, m *graph.Matrix) (Scores, error) {
	n := m.Size()
	if n == 0 {
		return Scores{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := make(Scores, n)
	for i := 0; i < n; i++ {
		scores[i] = float64(m.Degree(i))
	}
	return normalize(scores), nil
}

// IterativeRanker is implemented by rankers that can report how many
// iterations they ran.
type IterativeRanker interface {
	Ranker
	RankWithIterations(ctx context.Context, m *graph.Matrix) (Scores, int, error)
}

var _ IterativeRanker = (*LexRank)(nil)
