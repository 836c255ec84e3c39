// Package rank scores sentences by their centrality in the similarity graph.
package rank

import (
	"context"
	"errors"
	"fmt"

	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/graph"
)

// Ranker algorithm names
const (
	AlgorithmLexRank = "lexrank"
	AlgorithmDegree  = "degree"
)

// Default LexRank parameters
const (
	DefaultDamping       = 0.85
	DefaultEpsilon       = 1e-4
	DefaultMaxIterations = 100
)

// ErrNonConvergence marks a ranking that hit its iteration cap. The scores
// returned alongside it are still usable.
var ErrNonConvergence = errors.New("power iteration did not converge")

// Scores holds one non-negative centrality value per sentence, summing to 1.
type Scores []float64

// Sum returns the total of all scores.
func (s Scores) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Ranker computes a centrality score for every node of a similarity graph.
type Ranker interface {
	// Name returns the algorithm name.
	Name() string

	// Rank scores every sentence. A *NonConvergenceError may be returned
	// together with valid scores.
	Rank(ctx context.Context, m *graph.Matrix) (Scores, error)
}

// Options configures the rankers.
type Options struct {
	Damping       float64
	Epsilon       float64
	MaxIterations int
}

// DefaultOptions returns the default LexRank parameters.
func DefaultOptions() Options {
	return Options{
		Damping:       DefaultDamping,
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate checks parameter ranges.
func (o Options) Validate() error {
	switch {
	case o.Damping <= 0 || o.Damping > 1:
		return errortypes.InvalidParameterError(
			fmt.Errorf("damping must be in (0, 1], got %v", o.Damping), "invalid ranker configuration")
	case o.Epsilon <= 0:
		return errortypes.InvalidParameterError(
			fmt.Errorf("epsilon must be positive, got %v", o.Epsilon), "invalid ranker configuration")
	case o.MaxIterations <= 0:
		return errortypes.InvalidParameterError(
			fmt.Errorf("max iterations must be positive, got %d", o.MaxIterations), "invalid ranker configuration")
	}
	return nil
}

// New returns the ranker registered under name.
func New(name string, opts Options) (Ranker, error) {
	switch name {
	case AlgorithmLexRank, "":
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		return NewLexRank(opts), nil
	case AlgorithmDegree:
		return NewDegree(), nil
	default:
		return nil, errortypes.InvalidParameterError(
			fmt.Errorf("unknown ranker %q", name), "invalid ranker configuration").
			WithField("ranker", name)
	}
}

// NonConvergenceError reports how far the iteration got before the cap.
type NonConvergenceError struct {
	Iterations int
	Delta      float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (last delta %.3g)", ErrNonConvergence, e.Iterations, e.Delta)
}

// Unwrap allows errors.Is(err, ErrNonConvergence).
func (e *NonConvergenceError) Unwrap() error {
	return ErrNonConvergence
}

func uniform(n int) Scores {
	s := make(Scores, n)
	for i := range s {
		s[i] = 1 / float64(n)
	}
	return s
}

// normalize clamps negatives to zero and rescales to sum 1.
func normalize(s Scores) Scores {
	var total float64
	for i, v := range s {
		if v < 0 {
			s[i] = 0
			continue
		}
		total += v
	}
	if total == 0 {
		return uniform(len(s))
	}
	for i := range s {
		s[i] /= total
	}
	return s
}
