package textnorm

import (
	"fmt"

	"github.com/kljensen/snowball"
	"github.com/localrivet/lexsummary/internal/errortypes"
	porterstemmer "github.com/reiver/go-porterstemmer"
)

// Stemmer names
const (
	StemmerSnowball = "snowball"
	StemmerPorter   = "porter"
	StemmerNone     = "none"
)

// snowballLanguages lists the languages supported by the snowball stemmer.
var snowballLanguages = map[string]bool{
	"english":   true,
	"spanish":   true,
	"french":    true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

// Stemmer reduces a lowercase word to its stem.
type Stemmer interface {
	Name() string
	Stem(word string) string
}

// NewStemmer returns the stemmer with the given name for language.
func NewStemmer(name, language string) (Stemmer, error) {
	switch name {
	case StemmerSnowball, "":
		if !snowballLanguages[language] {
			return nil, errortypes.InvalidParameterError(
				fmt.Errorf("snowball has no stemmer for %q", language), "invalid stemmer configuration").
				WithField("language", language)
		}
		return snowballStemmer{language: language}, nil
	case StemmerPorter:
		if language != DefaultLanguage {
			return nil, errortypes.InvalidParameterError(
				fmt.Errorf("porter stemmer only supports english, got %q", language), "invalid stemmer configuration").
				WithField("language", language)
		}
		return porterStemmer{}, nil
	case StemmerNone:
		return noopStemmer{}, nil
	default:
		return nil, errortypes.InvalidParameterError(
			fmt.Errorf("unknown stemmer %q", name), "invalid stemmer configuration").
			WithField("stemmer", name)
	}
}

type snowballStemmer struct {
	language string
}

func (s snowballStemmer) Name() string { return StemmerSnowball + ":" + s.language }

func (s snowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

type porterStemmer struct{}

func (porterStemmer) Name() string { return StemmerPorter }

func (porterStemmer) Stem(word string) (stem string) {
	// The porter implementation panics on some short inputs
	defer func() {
		if r := recover(); r != nil {
			stem = word
		}
	}()
	stem = porterstemmer.StemString(word)
	if stem == "" {
		return word
	}
	return stem
}

type noopStemmer struct{}

func (noopStemmer) Name() string { return StemmerNone }

func (noopStemmer) Stem(word string) string { return word }
