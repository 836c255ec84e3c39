package rank

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/localrivet/lexsummary/internal/graph"
)

func assertDistribution(t *testing.T, scores Scores, n int) {
	t.Helper()
	if len(scores) != n {
		t.Fatalf("len(scores) = %d, want %d", len(scores), n)
	}
	for i, v := range scores {
		if v < 0 {
			t.Errorf("scores[%d] = %v, want non-negative", i, v)
		}
	}
	if n > 0 && math.Abs(scores.Sum()-1) > 1e-6 {
		t.Errorf("scores sum to %v, want 1", scores.Sum())
	}
}

func TestLexRank_EdgeCases(t *testing.T) {
	r := NewLexRank(DefaultOptions())

	empty, err := r.Rank(context.Background(), graph.FromRows(nil))
	if err != nil || len(empty) != 0 {
		t.Errorf("Rank(empty) = %v, %v; want empty, nil", empty, err)
	}

	single, err := r.Rank(context.Background(), graph.FromRows([][]float64{{0}}))
	if err != nil {
		t.Fatalf("Rank(single) error = %v", err)
	}
	if len(single) != 1 || single[0] != 1.0 {
		t.Errorf("Rank(single) = %v, want [1]", single)
	}
}

func TestLexRank_Distribution(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{
			name: "connected graph",
			rows: [][]float64{
				{0, 0.5, 0.2, 0.1},
				{0.5, 0, 0.4, 0.3},
				{0.2, 0.4, 0, 0},
				{0.1, 0.3, 0, 0},
			},
		},
		{
			name: "no edges",
			rows: [][]float64{
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
			},
		},
		{
			name: "isolated node",
			rows: [][]float64{
				{0, 1, 0},
				{1, 0, 0},
				{0, 0, 0},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scores, err := NewLexRank(DefaultOptions()).Rank(context.Background(), graph.FromRows(test.rows))
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			assertDistribution(t, scores, len(test.rows))
		})
	}
}

func TestLexRank_CentralSentenceWins(t *testing.T) {
	// Sentence 1 is linked to everything, the others only to sentence 1
	m := graph.FromRows([][]float64{
		{0, 0.8, 0, 0},
		{0.8, 0, 0.8, 0.8},
		{0, 0.8, 0, 0},
		{0, 0.8, 0, 0},
	})

	scores, err := NewLexRank(DefaultOptions()).Rank(context.Background(), m)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for i := range scores {
		if i != 1 && scores[i] >= scores[1] {
			t.Errorf("scores[%d] = %v >= central score %v", i, scores[i], scores[1])
		}
	}
	// Symmetric leaves score equally
	if math.Abs(scores[0]-scores[2]) > 1e-4 || math.Abs(scores[2]-scores[3]) > 1e-4 {
		t.Errorf("leaf scores differ: %v", scores)
	}
}

func TestLexRank_NoEdgesIsUniform(t *testing.T) {
	scores, err := NewLexRank(DefaultOptions()).Rank(context.Background(), graph.FromRows([][]float64{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}))
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for i, v := range scores {
		if math.Abs(v-0.25) > 1e-9 {
			t.Errorf("scores[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestLexRank_NonConvergence(t *testing.T) {
	m := graph.FromRows([][]float64{
		{0, 1, 0.1},
		{1, 0, 0.9},
		{0.1, 0.9, 0},
	})
	r := NewLexRank(Options{Damping: 0.85, Epsilon: 1e-15, MaxIterations: 1})

	scores, iterations, err := r.RankWithIterations(context.Background(), m)
	if !errors.Is(err, ErrNonConvergence) {
		t.Fatalf("Rank() error = %v, want ErrNonConvergence", err)
	}

	var nce *NonConvergenceError
	if !errors.As(err, &nce) || nce.Iterations != 1 {
		t.Errorf("NonConvergenceError = %+v, want Iterations 1", nce)
	}
	if iterations != 1 {
		t.Errorf("iterations = %d, want 1", iterations)
	}

	// Best available iterate is still a distribution
	assertDistribution(t, scores, 3)
}

func TestLexRank_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLexRank(DefaultOptions()).Rank(ctx, graph.FromRows([][]float64{{0, 1}, {1, 0}}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Rank() error = %v, want context.Canceled", err)
	}
}

func TestDegree_Rank(t *testing.T) {
	m := graph.FromRows([][]float64{
		{0, 1, 1},
		{1, 0, 0},
		{1, 0, 0},
	})
	scores, err := NewDegree().Rank(context.Background(), m)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	assertDistribution(t, scores, 3)
	if math.Abs(scores[0]-0.5) > 1e-9 {
		t.Errorf("scores[0] = %v, want 0.5", scores[0])
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		algo     string
		opts     Options
		wantName string
		wantErr  bool
	}{
		{name: "default", algo: "", opts: DefaultOptions(), wantName: AlgorithmLexRank},
		{name: "lexrank", algo: AlgorithmLexRank, opts: DefaultOptions(), wantName: AlgorithmLexRank},
		{name: "degree", algo: AlgorithmDegree, opts: Options{}, wantName: AlgorithmDegree},
		{name: "unknown", algo: "textrank", opts: DefaultOptions(), wantErr: true},
		{name: "bad damping", algo: AlgorithmLexRank, opts: Options{Damping: 1.5, Epsilon: 1e-4, MaxIterations: 10}, wantErr: true},
		{name: "bad epsilon", algo: AlgorithmLexRank, opts: Options{Damping: 0.85, MaxIterations: 10}, wantErr: true},
		{name: "bad iterations", algo: AlgorithmLexRank, opts: Options{Damping: 0.85, Epsilon: 1e-4}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := New(test.algo, test.opts)
			if (err != nil) != test.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			if r.Name() != test.wantName {
				t.Errorf("Name() = %v, want %v", r.Name(), test.wantName)
			}
		})
	}
}
