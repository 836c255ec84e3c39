// Package selector picks the highest scoring sentences and restores their
// document order.
package selector

import (
	"math"
	"sort"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/rank"
)

// tieTolerance is the largest score difference still treated as a tie.
const tieTolerance = 1e-12

// Select returns the k highest scoring sentences in ascending index order.
// Ties go to the sentence that appears first. k >= N returns every sentence
// and k <= 0 returns none. Scores must be index-aligned with doc.Sentences.
func Select(scores rank.Scores, doc document.Document, k int) []document.Sentence {
	n := doc.Len()
	if k <= 0 || n == 0 {
		return []document.Sentence{}
	}
	if k >= n {
		out := make([]document.Sentence, n)
		copy(out, doc.Sentences)
		return out
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := scoreAt(scores, order[a]), scoreAt(scores, order[b])
		if math.Abs(sa-sb) > tieTolerance {
			return sa > sb
		}
		return order[a] < order[b]
	})

	chosen := order[:k]
	sort.Ints(chosen)

	out := make([]document.Sentence, 0, k)
	for _, idx := range chosen {
		out = append(out, doc.Sentences[idx])
	}
	return out
}

// Join concatenates the selected sentences with single spaces.
func Join(sentences []document.Sentence) string {
	return document.Join(sentences)
}

func scoreAt(scores rank.Scores, i int) float64 {
	if i < len(scores) {
		return scores[i]
	}
	return 0
}
