// Package weights computes TF-IDF term weights for the sentences of a
// single document. Each sentence plays the role of a "document" in the
// classic IDF formula.
package weights

import (
	"fmt"
	"math"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/vector"
)

// TFMode selects how raw term counts are scaled.
type TFMode string

const (
	// TFRaw uses the plain term count.
	TFRaw TFMode = "raw"

	// TFLog uses 1 + ln(count).
	TFLog TFMode = "log"

	// TFMax divides the count by the largest count in the same sentence.
	TFMax TFMode = "max"
)

// ParseTFMode validates a configured tf mode. An empty string means TFRaw.
func ParseTFMode(s string) (TFMode, error) {
	switch TFMode(s) {
	case "", TFRaw:
		return TFRaw, nil
	case TFLog:
		return TFLog, nil
	case TFMax:
		return TFMax, nil
	}
	return "", errortypes.InvalidParameterError(fmt.Errorf("unknown tf mode %q", s), "invalid weighting configuration")
}

// Options configures weight computation.
type Options struct {
	TF TFMode
}

// Vocabulary maps each distinct term of a document to the number of
// sentences containing it.
type Vocabulary map[string]int

// BuildVocabulary collects document frequencies for every term.
func BuildVocabulary(doc document.Document) Vocabulary {
	vocab := make(Vocabulary)
	for _, s := range doc.Sentences {
		seen := make(map[string]bool, len(s.Tokens))
		for _, tok := range s.Tokens {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			vocab[tok]++
		}
	}
	return vocab
}

// IDF returns ln(n/df) for every term of the vocabulary.
func (v Vocabulary) IDF(n int) map[string]float64 {
	idf := make(map[string]float64, len(v))
	for term, df := range v {
		idf[term] = math.Log(float64(n) / float64(df))
	}
	return idf
}

// TermFrequencies scales raw token counts according to mode.
func TermFrequencies(tokens []string, mode TFMode) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	maxCount := 0
	for _, tok := range tokens {
		counts[tok]++
		if counts[tok] > maxCount {
			maxCount = counts[tok]
		}
	}

	tf := make(map[string]float64, len(counts))
	for term, c := range counts {
		switch mode {
		case TFLog:
			tf[term] = 1 + math.Log(float64(c))
		case TFMax:
			tf[term] = float64(c) / float64(maxCount)
		default:
			tf[term] = float64(c)
		}
	}
	return tf
}

// Compute returns one TF-IDF vector per sentence, index-aligned with
// doc.Sentences. Terms whose weight is zero are left out, so a sentence
// whose terms all occur in every sentence gets an empty vector.
func Compute(doc document.Document, opts Options) []vector.Sparse {
	n := doc.Len()
	out := make([]vector.Sparse, n)
	if n == 0 {
		return out
	}

	idf := BuildVocabulary(doc).IDF(n)
	for i, s := range doc.Sentences {
		w := make(vector.Sparse)
		for term, tf := range TermFrequencies(s.Tokens, opts.TF) {
			if weight := tf * idf[term]; weight > 0 {
				w[term] = weight
			}
		}
		out[i] = w
	}
	return out
}
