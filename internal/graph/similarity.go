// Package graph builds the sentence similarity graph used for centrality
// ranking.
package graph

import (
	"context"
	"runtime"

	"github.com/localrivet/lexsummary/internal/vector"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// DefaultThreshold drops only numerically negligible similarities.
const DefaultThreshold = 1e-9

// Options configures graph construction.
type Options struct {
	// Threshold zeroes similarities strictly below it.
	Threshold float64

	// Binary turns every surviving edge into weight 1.
	Binary bool

	// Workers bounds the number of rows computed concurrently.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

// Matrix is a symmetric sentence similarity matrix with a zero diagonal.
type Matrix struct {
	sym *mat.SymDense
	n   int
}

// NewMatrix wraps a symmetric matrix. The diagonal is zeroed.
func NewMatrix(sym *mat.SymDense) *Matrix {
	if sym == nil {
		return &Matrix{}
	}
	n := sym.SymmetricDim()
	for i := 0; i < n; i++ {
		sym.SetSym(i, i, 0)
	}
	return &Matrix{sym: sym, n: n}
}

// FromRows builds a Matrix from a dense row-major table. Only the upper
// triangle is read.
func FromRows(rows [][]float64) *Matrix {
	n := len(rows)
	if n == 0 {
		return &Matrix{}
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sym.SetSym(i, j, rows[i][j])
		}
	}
	return NewMatrix(sym)
}

// Size returns the number of sentences N.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the similarity between sentences i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	for j := 0; j < m.n; j++ {
		row[j] = m.sym.At(i, j)
	}
	return row
}

// Degree returns the number of nonzero edges of sentence i.
func (m *Matrix) Degree(i int) int {
	deg := 0
	for j := 0; j < m.n; j++ {
		if j != i && m.sym.At(i, j) > 0 {
			deg++
		}
	}
	return deg
}

// Build computes pairwise cosine similarity between sentence vectors.
// Each row's upper triangle is computed by its own goroutine.
func Build(ctx context.Context, vectors []vector.Sparse, opts Options) (*Matrix, error) {
	n := len(vectors)
	if n == 0 {
		return &Matrix{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// rows[i] holds similarities to sentences i+1..n-1
	rows := make([][]float64, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]float64, n-i-1)
			for j := i + 1; j < n; j++ {
				row[j-i-1] = edgeWeight(vector.Cosine(vectors[i], vectors[j]), opts)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sym := mat.NewSymDense(n, nil)
	for i, row := range rows {
		for k, w := range row {
			sym.SetSym(i, i+k+1, w)
		}
	}
	return NewMatrix(sym), nil
}

func edgeWeight(sim float64, opts Options) float64 {
	if sim < opts.Threshold || sim == 0 {
		return 0
	}
	if opts.Binary {
		return 1
	}
	return sim
}
