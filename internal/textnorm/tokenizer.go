package textnorm

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// languageTags maps configured language names to BCP 47 tags for casing.
var languageTags = map[string]language.Tag{
	"english":   language.English,
	"spanish":   language.Spanish,
	"french":    language.French,
	"russian":   language.Russian,
	"swedish":   language.Swedish,
	"norwegian": language.Norwegian,
	"hungarian": language.Hungarian,
}

// tokenizer turns one sentence into normalized terms.
// It holds only read-only state and is safe for concurrent use.
type tokenizer struct {
	tag             language.Tag
	stopWords       map[string]bool
	stemmer         Stemmer
	stripDiacritics bool
}

func newTokenizer(opts Options, stemmer Stemmer) *tokenizer {
	tag, ok := languageTags[opts.Language]
	if !ok {
		tag = language.Und
	}

	stop := make(map[string]bool)
	if opts.StopWords {
		for _, w := range StopWords(opts.Language) {
			stop[w] = true
		}
	}
	for _, w := range opts.ExtraStopWords {
		if w = strings.TrimSpace(strings.ToLower(w)); w != "" {
			stop[w] = true
		}
	}

	return &tokenizer{
		tag:             tag,
		stopWords:       stop,
		stemmer:         stemmer,
		stripDiacritics: opts.StripDiacritics,
	}
}

// Tokens returns the normalized terms of a sentence in order of appearance.
func (t *tokenizer) Tokens(sentence string) []string {
	text := norm.NFC.String(sentence)

	if t.stripDiacritics {
		// Transformers are stateful, so build one per call
		strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		if folded, _, err := transform.String(strip, text); err == nil {
			text = folded
		}
	}

	text = cases.Lower(t.tag).String(text)

	words := wordPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if t.stopWords[w] {
			continue
		}
		tokens = append(tokens, t.stemmer.Stem(w))
	}
	return tokens
}

func (t *tokenizer) fingerprint() string {
	stop := make([]string, 0, len(t.stopWords))
	for w := range t.stopWords {
		stop = append(stop, w)
	}
	sort.Strings(stop)

	var b strings.Builder
	b.WriteString(t.tag.String())
	b.WriteByte('|')
	b.WriteString(t.stemmer.Name())
	if t.stripDiacritics {
		b.WriteString("|fold")
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(stop, ","))
	return b.String()
}
