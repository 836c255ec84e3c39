package textnorm

import (
	"reflect"
	"testing"
)

func mustNew(t *testing.T, opts Options) Normalizer {
	t.Helper()
	n, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return n
}

func TestSplitRegex(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentences",
			text: "A. B. C.",
			want: []string{"A.", " B.", " C."},
		},
		{
			name: "mixed terminators",
			text: "Is it? Yes! Done.",
			want: []string{"Is it?", " Yes!", " Done."},
		},
		{
			name: "no terminator",
			text: "just a fragment",
			want: []string{"just a fragment"},
		},
		{
			name: "decimal numbers stay inside",
			text: "Pi is 3.14 roughly. Next.",
			want: []string{"Pi is 3.14 roughly.", " Next."},
		},
		{
			name: "closing quote",
			text: `He said "stop." Then left.`,
			want: []string{`He said "stop."`, " Then left."},
		},
		{
			name: "repeated punctuation",
			text: "Really?! Yes.",
			want: []string{"Really?!", " Yes."},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := splitRegex(test.text)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("splitRegex(%q) = %q, want %q", test.text, got, test.want)
			}
		})
	}
}

func TestRegexNormalizer_Segment(t *testing.T) {
	n := mustNew(t, Options{
		Language:  "english",
		Segmenter: SegmenterRegex,
		Stemmer:   StemmerNone,
		StopWords: true,
	})

	doc := n.Segment("The cat sat on the mat.\n\n  The   dog ran away!")
	if doc.Len() != 2 {
		t.Fatalf("Segment() produced %d sentences, want 2", doc.Len())
	}

	if doc.Sentences[1].Text != "The dog ran away!" {
		t.Errorf("Sentence text = %q, want whitespace collapsed", doc.Sentences[1].Text)
	}

	for i, s := range doc.Sentences {
		if s.Index != i {
			t.Errorf("Sentence %d has Index %d", i, s.Index)
		}
	}

	wantTokens := []string{"cat", "sat", "mat"}
	if !reflect.DeepEqual(doc.Sentences[0].Tokens, wantTokens) {
		t.Errorf("Tokens = %v, want %v", doc.Sentences[0].Tokens, wantTokens)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	for _, segmenter := range []string{SegmenterPunkt, SegmenterRegex} {
		n := mustNew(t, Options{Segmenter: segmenter})
		for _, text := range []string{"", "   ", "\n\t\n"} {
			if doc := n.Segment(text); !doc.IsEmpty() {
				t.Errorf("%s: Segment(%q) = %d sentences, want 0", segmenter, text, doc.Len())
			}
		}
	}
}

func TestPunktNormalizer_Segment(t *testing.T) {
	n := mustNew(t, DefaultOptions())

	// Repeated initialization is a no-op
	if err := n.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := n.Initialize(); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	doc := n.Segment("The cats were running. The dogs were sleeping.")
	if doc.Len() != 2 {
		t.Fatalf("Segment() produced %d sentences, want 2: %v", doc.Len(), doc.Texts())
	}

	want := []string{"cat", "run"}
	if !reflect.DeepEqual(doc.Sentences[0].Tokens, want) {
		t.Errorf("Tokens = %v, want %v", doc.Sentences[0].Tokens, want)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	n := mustNew(t, DefaultOptions())
	text := "Graphs rank sentences. Sentences share words. Words carry weight."

	first := n.Segment(text)
	second := n.Segment(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Segment() not deterministic: %v vs %v", first, second)
	}
}

func TestTokenizer_Options(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		sentence string
		want     []string
	}{
		{
			name:     "stop words kept",
			opts:     Options{Language: "english", Stemmer: StemmerNone},
			sentence: "The Cat",
			want:     []string{"the", "cat"},
		},
		{
			name:     "extra stop words",
			opts:     Options{Language: "english", Stemmer: StemmerNone, ExtraStopWords: []string{"Cat"}},
			sentence: "The cat sleeps",
			want:     []string{"the", "sleeps"},
		},
		{
			name:     "diacritics stripped",
			opts:     Options{Language: "french", Stemmer: StemmerNone, StripDiacritics: true},
			sentence: "Café crème",
			want:     []string{"cafe", "creme"},
		},
		{
			name:     "porter stemming",
			opts:     Options{Language: "english", Stemmer: StemmerPorter},
			sentence: "connected connections",
			want:     []string{"connect", "connect"},
		},
		{
			name:     "numbers are tokens",
			opts:     Options{Language: "english", Stemmer: StemmerNone},
			sentence: "Route 66, mile 12",
			want:     []string{"route", "66", "mile", "12"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stemmer, err := NewStemmer(test.opts.Stemmer, test.opts.Language)
			if err != nil {
				t.Fatalf("NewStemmer() error = %v", err)
			}
			got := newTokenizer(test.opts, stemmer).Tokens(test.sentence)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("Tokens(%q) = %v, want %v", test.sentence, got, test.want)
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown segmenter", opts: Options{Segmenter: "icu"}},
		{name: "unknown stemmer", opts: Options{Stemmer: "lancaster"}},
		{name: "porter for spanish", opts: Options{Language: "spanish", Stemmer: StemmerPorter}},
		{name: "snowball for klingon", opts: Options{Language: "klingon", Stemmer: StemmerSnowball}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.opts); err == nil {
				t.Errorf("New(%+v) error = nil, want error", test.opts)
			}
		})
	}
}

func TestNew_PunktFallsBackForOtherLanguages(t *testing.T) {
	n := mustNew(t, Options{Language: "spanish", Segmenter: SegmenterPunkt})
	if _, ok := n.(*RegexNormalizer); !ok {
		t.Errorf("New() = %T, want *RegexNormalizer", n)
	}
}

func TestFingerprint(t *testing.T) {
	a := mustNew(t, DefaultOptions())
	b := mustNew(t, DefaultOptions())
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("equal options produced different fingerprints")
	}

	opts := DefaultOptions()
	opts.Stemmer = StemmerNone
	c := mustNew(t, opts)
	if a.Fingerprint() == c.Fingerprint() {
		t.Errorf("different stemmers produced the same fingerprint %q", a.Fingerprint())
	}
}
