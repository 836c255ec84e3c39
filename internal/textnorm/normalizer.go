// Package textnorm splits raw text into sentences and normalizes each
// sentence into word tokens. Implementations are swappable per language.
package textnorm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/errortypes"
)

// Segmenter names
const (
	SegmenterPunkt = "punkt"
	SegmenterRegex = "regex"
)

// DefaultLanguage is the language used when none is configured.
const DefaultLanguage = "english"

// Normalizer turns raw text into an ordered document of tokenized sentences.
type Normalizer interface {
	// Initialize loads any language resources. It is safe to call repeatedly;
	// only the first call does work. Segment calls it implicitly.
	Initialize() error

	// Segment splits text into sentences. It never fails: empty or
	// whitespace-only text yields an empty document.
	Segment(text string) document.Document

	// Fingerprint identifies the normalizer configuration. Two normalizers
	// with equal fingerprints produce identical output for the same text.
	Fingerprint() string
}

// Options configures a Normalizer.
type Options struct {
	// Language selects stop words, stemmer language and casing rules.
	Language string

	// Segmenter selects the sentence boundary detector ("punkt" or "regex").
	Segmenter string

	// Stemmer selects the stemming algorithm ("snowball", "porter" or "none").
	Stemmer string

	// StopWords enables removal of the built-in stop words for Language.
	StopWords bool

	// ExtraStopWords are removed in addition to the built-in list.
	ExtraStopWords []string

	// StripDiacritics folds accented letters to their base form.
	StripDiacritics bool

	// Logger receives initialization warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options used by the summarizer by default.
func DefaultOptions() Options {
	return Options{
		Language:  DefaultLanguage,
		Segmenter: SegmenterPunkt,
		Stemmer:   StemmerSnowball,
		StopWords: true,
	}
}

// New creates a Normalizer for the given options.
func New(opts Options) (Normalizer, error) {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	opts.Language = strings.ToLower(opts.Language)
	if opts.Segmenter == "" {
		opts.Segmenter = SegmenterPunkt
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	stemmer, err := NewStemmer(opts.Stemmer, opts.Language)
	if err != nil {
		return nil, err
	}

	tok := newTokenizer(opts, stemmer)

	switch opts.Segmenter {
	case SegmenterPunkt:
		if opts.Language != DefaultLanguage {
			// Punkt training data ships for English only
			opts.Logger.Warn("Punkt segmenter has no data for language, using regex segmenter",
				"language", opts.Language)
			return newRegexNormalizer(tok), nil
		}
		return newPunktNormalizer(tok, opts.Logger), nil
	case SegmenterRegex:
		return newRegexNormalizer(tok), nil
	default:
		return nil, errortypes.InvalidParameterError(
			fmt.Errorf("unknown segmenter %q", opts.Segmenter), "invalid normalizer configuration").
			WithField("segmenter", opts.Segmenter)
	}
}

// cleanSentence trims a raw sentence and collapses internal whitespace runs
// so that joined output re-segments to the same sentences.
func cleanSentence(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// buildDocument tokenizes raw sentence strings, dropping blank ones.
func buildDocument(raw []string, tok *tokenizer) document.Document {
	doc := document.Document{Sentences: make([]document.Sentence, 0, len(raw))}
	for _, r := range raw {
		text := cleanSentence(r)
		if text == "" {
			continue
		}
		doc.Sentences = append(doc.Sentences, document.Sentence{
			Index:  len(doc.Sentences),
			Text:   text,
			Tokens: tok.Tokens(text),
		})
	}
	return doc
}
