package summarizer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/telemetry"
	"github.com/localrivet/lexsummary/internal/textnorm"
)

// LeadSummarizer is a simple implementation of the SentenceSummarizer
// interface. It returns the first sentences of the text, the usual
// baseline for extractive summarizers.
type LeadSummarizer struct {
	sentenceCount int
	normalizer    textnorm.Normalizer
	logger        *slog.Logger
	metrics       *telemetry.MetricsCollector
	initOnce      sync.Once
	initErr       error
}

// NewLeadSummarizer creates a new LeadSummarizer instance.
func NewLeadSummarizer(sentenceCount int, opts textnorm.Options) (*LeadSummarizer, error) {
	if sentenceCount <= 0 {
		sentenceCount = DefaultSentenceCount
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	normalizer, err := textnorm.New(opts)
	if err != nil {
		return nil, err
	}
	return &LeadSummarizer{
		sentenceCount: sentenceCount,
		normalizer:    normalizer,
		logger:        opts.Logger,
		metrics:       telemetry.NewMetricsCollector(),
	}, nil
}

// SetMetrics makes the summarizer record into m, so it can share a
// collector with the summarizer that reports health.
func (s *LeadSummarizer) SetMetrics(m *telemetry.MetricsCollector) {
	if m != nil {
		s.metrics = m
	}
}

// GetMetrics returns the metrics collector.
func (s *LeadSummarizer) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}

// Name returns "lead".
func (s *LeadSummarizer) Name() string {
	return ProviderLead
}

// Initialize loads the normalizer's resources.
func (s *LeadSummarizer) Initialize() error {
	s.initOnce.Do(func() {
		s.initErr = s.normalizer.Initialize()
	})
	return s.initErr
}

// Summarize returns the first sentences of text.
func (s *LeadSummarizer) Summarize(text string) (string, error) {
	res, err := s.SummarizeDetailed(context.Background(), text, s.sentenceCount)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// SummarizeDetailed returns the first sentenceCount sentences of text.
func (s *LeadSummarizer) SummarizeDetailed(ctx context.Context, text string, sentenceCount int) (*Result, error) {
	stopTotal := s.metrics.StartTimer(telemetry.MetricTimeTotal)
	defer stopTotal()
	s.metrics.IncrementCounter(telemetry.MetricRequests, 1)
	s.metrics.RecordTimestamp(telemetry.MetricLastRequest)

	if err := validateRequest(text, sentenceCount); err != nil {
		countRejected(s.metrics, err)
		return nil, err
	}

	s.Initialize()

	stopSegment := s.metrics.StartTimer(telemetry.MetricTimeSegment)
	doc := s.normalizer.Segment(text)
	stopSegment()
	s.metrics.IncrementCounter(telemetry.MetricSentencesIn, int64(doc.Len()))
	s.metrics.SetGauge(telemetry.MetricLastDocumentSize, float64(doc.Len()))
	if doc.IsEmpty() {
		s.metrics.IncrementCounter(telemetry.MetricEmptyInputs, 1)
	}

	k := min(sentenceCount, doc.Len())

	chosen := make([]document.Sentence, k)
	copy(chosen, doc.Sentences[:k])

	s.metrics.IncrementCounter(telemetry.MetricSentencesOut, int64(k))
	s.logger.Debug("Lead summary built", "sentences_in", doc.Len(), "sentences_out", k)
	return &Result{
		Summary:        document.Join(chosen),
		Sentences:      chosen,
		TotalSentences: doc.Len(),
		Converged:      true,
		Ranker:         ProviderLead,
	}, nil
}
