// Package vector provides sparse term-weight vectors and the similarity
// measures computed over them.
package vector

import (
	"math"
	"sort"
)

// Sparse is a term-weight vector keyed by term. Missing terms weigh zero.
type Sparse map[string]float64

// Dot returns the dot product of two sparse vectors. Products are summed in
// sorted term order so equal inputs always give bit-identical results.
func Dot(a, b Sparse) float64 {
	// Iterate over the smaller map
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for _, term := range Terms(a) {
		if wb, ok := b[term]; ok {
			dot += a[term] * wb
		}
	}
	return dot
}

// Norm returns the Euclidean length of the vector, summed in sorted term order.
func Norm(v Sparse) float64 {
	var sum float64
	for _, term := range Terms(v) {
		w := v[term]
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine calculates the cosine similarity between two non-negative sparse
// vectors. A vector with zero magnitude has similarity 0 to every vector,
// including itself. The result is clamped to [0, 1] to absorb rounding.
func Cosine(a, b Sparse) float64 {
	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := Dot(a, b) / (normA * normB)
	switch {
	case similarity < 0:
		return 0
	case similarity > 1:
		return 1
	}
	return similarity
}

// Terms returns the terms of the vector in sorted order.
func Terms(v Sparse) []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
