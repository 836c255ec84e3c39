// Package summarizer provides interfaces and implementations for
// extractive summarization: picking the most representative sentences of a
// text and returning them in their original order.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/rank"
)

const (
	// DefaultSentenceCount is the summary length used when none is given.
	DefaultSentenceCount = 3

	// ProviderLexRank selects the graph-based LexRankSummarizer.
	ProviderLexRank = "lexrank"

	// ProviderLead selects the first-sentences LeadSummarizer.
	ProviderLead = "lead"
)

// Summarizer defines the interface for summarizing text content.
type Summarizer interface {
	// Summarize takes a text input and returns a condensed summary
	// of the configured default length.
	Summarize(text string) (string, error)

	// Initialize sets up the summarizer with any required configuration.
	Initialize() error
}

// SentenceSummarizer is a Summarizer that accepts a per-call sentence count
// and reports how the summary was built.
type SentenceSummarizer interface {
	Summarizer

	// Name identifies the algorithm.
	Name() string

	// SummarizeDetailed selects sentenceCount sentences from text.
	SummarizeDetailed(ctx context.Context, text string, sentenceCount int) (*Result, error)
}

// Result describes one summarization.
type Result struct {
	// Summary is the selected sentences joined with single spaces.
	Summary string `json:"summary"`

	// Sentences are the selected sentences in original order.
	Sentences []document.Sentence `json:"sentences"`

	// Scores holds the score of every input sentence, by index.
	Scores rank.Scores `json:"scores,omitempty"`

	// TotalSentences is the number of sentences found in the input.
	TotalSentences int `json:"total_sentences"`

	// Converged is false when the ranking stopped at its iteration cap.
	Converged bool `json:"converged"`

	// Iterations is the number of power iterations run.
	Iterations int `json:"iterations"`

	// Ranker names the algorithm that produced the scores.
	Ranker string `json:"ranker"`
}

// validateRequest rejects blank text and non-positive sentence counts
// before any pipeline work happens.
func validateRequest(text string, sentenceCount int) error {
	if strings.TrimSpace(text) == "" {
		return errortypes.EmptyInputError("no text to summarize")
	}
	return validateSentenceCount(sentenceCount)
}

func validateSentenceCount(sentenceCount int) error {
	if sentenceCount < 1 {
		return errortypes.InvalidParameterError(
			fmt.Errorf("%w: got %d", errortypes.ErrInvalidSentenceCount, sentenceCount),
			"invalid sentence count").
			WithField("sentence_count", sentenceCount)
	}
	return nil
}
