package textnorm

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/localrivet/lexsummary/internal/document"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// PunktNormalizer segments English text with the Punkt sentence tokenizer,
// which knows common abbreviations ("Dr.", "e.g.") and initials.
type PunktNormalizer struct {
	tok    *tokenizer
	logger *slog.Logger

	initOnce  sync.Once
	initErr   error
	sentencer *sentences.DefaultSentenceTokenizer
}

// newPunktNormalizer creates a PunktNormalizer. The Punkt model is loaded
// lazily on first use.
func newPunktNormalizer(tok *tokenizer, logger *slog.Logger) *PunktNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PunktNormalizer{tok: tok, logger: logger}
}

// Initialize loads the English Punkt model once.
func (n *PunktNormalizer) Initialize() error {
	n.initOnce.Do(func() {
		st, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			n.initErr = fmt.Errorf("failed to load punkt model: %w", err)
			n.logger.Warn("Punkt model unavailable, falling back to regex segmentation", "error", err)
			return
		}
		n.sentencer = st
		n.logger.Debug("Punkt sentence tokenizer loaded")
	})
	return n.initErr
}

// Segment splits text into tokenized sentences.
func (n *PunktNormalizer) Segment(text string) document.Document {
	if strings.TrimSpace(text) == "" {
		return document.Document{}
	}

	if err := n.Initialize(); err != nil {
		return buildDocument(splitRegex(text), n.tok)
	}

	found := n.sentencer.Tokenize(text)
	raw := make([]string, 0, len(found))
	for _, s := range found {
		raw = append(raw, s.Text)
	}
	return buildDocument(raw, n.tok)
}

// Fingerprint identifies the configuration.
func (n *PunktNormalizer) Fingerprint() string {
	return SegmenterPunkt + "|" + n.tok.fingerprint()
}
