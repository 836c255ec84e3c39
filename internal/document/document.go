// Package document defines the sentence-level data model shared by the
// summarization pipeline stages.
package document

import "strings"

// Sentence is one segmented sentence of the input text.
type Sentence struct {
	// Index is the 0-based position of the sentence in the source text.
	Index int `json:"index"`

	// Text is the raw sentence text used for output.
	Text string `json:"text"`

	// Tokens holds the normalized terms of the sentence. It may be empty.
	Tokens []string `json:"tokens"`
}

// Document is an ordered sequence of sentences.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// Len returns the number of sentences in the document.
func (d Document) Len() int {
	return len(d.Sentences)
}

// IsEmpty reports whether the document has no sentences.
func (d Document) IsEmpty() bool {
	return len(d.Sentences) == 0
}

// Texts returns the raw text of every sentence in document order.
func (d Document) Texts() []string {
	texts := make([]string, len(d.Sentences))
	for i, s := range d.Sentences {
		texts[i] = s.Text
	}
	return texts
}

// Join concatenates sentence texts with a single space.
func Join(sentences []Sentence) string {
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
