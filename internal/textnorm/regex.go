package textnorm

import (
	"strings"
	"unicode"

	"github.com/localrivet/lexsummary/internal/document"
)

// RegexNormalizer segments text on terminal punctuation followed by
// whitespace. It needs no language data.
type RegexNormalizer struct {
	tok *tokenizer
}

func newRegexNormalizer(tok *tokenizer) *RegexNormalizer {
	return &RegexNormalizer{tok: tok}
}

// Initialize is a no-op; the regex segmenter has no resources to load.
func (n *RegexNormalizer) Initialize() error {
	return nil
}

// Segment splits text into tokenized sentences.
func (n *RegexNormalizer) Segment(text string) document.Document {
	if strings.TrimSpace(text) == "" {
		return document.Document{}
	}
	return buildDocument(splitRegex(text), n.tok)
}

// Fingerprint identifies the configuration.
func (n *RegexNormalizer) Fingerprint() string {
	return SegmenterRegex + "|" + n.tok.fingerprint()
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}

// splitRegex cuts text after a run of terminal punctuation (plus any closing
// quotes or brackets) that is followed by whitespace or the end of input.
func splitRegex(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && isTerminal(runes[end]) {
			end++
		}
		for end < len(runes) && isCloser(runes[end]) {
			end++
		}
		if end == len(runes) || unicode.IsSpace(runes[end]) {
			out = append(out, string(runes[start:end]))
			start = end
		}
		i = end - 1
	}

	if start < len(runes) {
		if tail := string(runes[start:]); strings.TrimSpace(tail) != "" {
			out = append(out, tail)
		}
	}
	return out
}
