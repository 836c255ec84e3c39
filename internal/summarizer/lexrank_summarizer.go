package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/localrivet/lexsummary/internal/document"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/graph"
	"github.com/localrivet/lexsummary/internal/rank"
	"github.com/localrivet/lexsummary/internal/segmentcache"
	"github.com/localrivet/lexsummary/internal/selector"
	"github.com/localrivet/lexsummary/internal/telemetry"
	"github.com/localrivet/lexsummary/internal/textnorm"
	"github.com/localrivet/lexsummary/internal/util"
	"github.com/localrivet/lexsummary/internal/weights"
)

// DefaultTimeout bounds a single summarization call.
const DefaultTimeout = 30 * time.Second

// Options configures a LexRankSummarizer.
type Options struct {
	// SentenceCount is used by Summarize. Defaults to DefaultSentenceCount.
	SentenceCount int

	// Timeout bounds one call. Zero disables the deadline.
	Timeout time.Duration

	Normalizer textnorm.Options
	Weights    weights.Options
	Graph      graph.Options

	// Ranker is the ranking algorithm name ("lexrank" or "degree").
	Ranker string
	Rank   rank.Options

	// Cache stores segmented documents. Nil disables caching.
	Cache segmentcache.Cache

	// Metrics receives pipeline metrics. Nil creates a private collector.
	Metrics *telemetry.MetricsCollector

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the standard LexRank pipeline configuration.
func DefaultOptions() Options {
	return Options{
		SentenceCount: DefaultSentenceCount,
		Timeout:       DefaultTimeout,
		Normalizer:    textnorm.DefaultOptions(),
		Weights:       weights.Options{TF: weights.TFRaw},
		Graph:         graph.Options{Threshold: graph.DefaultThreshold},
		Ranker:        rank.AlgorithmLexRank,
		Rank:          rank.DefaultOptions(),
	}
}

// LexRankSummarizer implements SentenceSummarizer with the
// normalize → weight → graph → rank → select pipeline.
// It is safe for concurrent use.
type LexRankSummarizer struct {
	sentenceCount int
	timeout       time.Duration
	weightOpts    weights.Options
	graphOpts     graph.Options

	normalizer textnorm.Normalizer
	ranker     rank.Ranker
	cache      segmentcache.Cache
	metrics    *telemetry.MetricsCollector
	logger     *slog.Logger

	initOnce      sync.Once
	normalizerErr error
}

// NewLexRankSummarizer validates opts and builds the pipeline stages.
func NewLexRankSummarizer(opts Options) (*LexRankSummarizer, error) {
	if opts.SentenceCount == 0 {
		opts.SentenceCount = DefaultSentenceCount
	}
	if err := validateSentenceCount(opts.SentenceCount); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetricsCollector()
	}
	if opts.Cache == nil {
		opts.Cache = segmentcache.Noop{}
	}

	tf, err := weights.ParseTFMode(string(opts.Weights.TF))
	if err != nil {
		return nil, err
	}
	opts.Weights.TF = tf

	if opts.Normalizer.Logger == nil {
		opts.Normalizer.Logger = opts.Logger
	}
	normalizer, err := textnorm.New(opts.Normalizer)
	if err != nil {
		return nil, err
	}

	ranker, err := rank.New(opts.Ranker, opts.Rank)
	if err != nil {
		return nil, err
	}

	return &LexRankSummarizer{
		sentenceCount: opts.SentenceCount,
		timeout:       opts.Timeout,
		weightOpts:    opts.Weights,
		graphOpts:     opts.Graph,
		normalizer:    normalizer,
		ranker:        ranker,
		cache:         opts.Cache,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}, nil
}

// Name returns the ranker name.
func (s *LexRankSummarizer) Name() string {
	return s.ranker.Name()
}

// Initialize loads normalizer resources once. A returned error means the
// normalizer fell back to a simpler segmenter; summarization still works.
func (s *LexRankSummarizer) Initialize() error {
	s.initOnce.Do(func() {
		s.normalizerErr = s.normalizer.Initialize()
		if s.normalizerErr != nil {
			s.logger.Warn("Normalizer initialization failed, using fallback segmentation",
				"error", s.normalizerErr)
		}
	})
	return s.normalizerErr
}

// GetMetrics returns the metrics collector.
func (s *LexRankSummarizer) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}

// NormalizerError reports the normalizer initialization error, if any.
func (s *LexRankSummarizer) NormalizerError() error {
	s.Initialize()
	return s.normalizerErr
}

// Cache returns the segment cache.
func (s *LexRankSummarizer) Cache() segmentcache.Cache {
	return s.cache
}

// Summarize returns the configured number of sentences.
func (s *LexRankSummarizer) Summarize(text string) (string, error) {
	res, err := s.SummarizeDetailed(context.Background(), text, s.sentenceCount)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// SummarizeDetailed selects the sentenceCount most central sentences of text.
//
// Blank text returns an empty_input error and sentenceCount < 1 an
// invalid_parameter error; neither runs the pipeline. Text that yields no
// sentences returns an empty result. A ranking that hits its iteration
// cap is logged and reported through Result.Converged, not as an error.
func (s *LexRankSummarizer) SummarizeDetailed(ctx context.Context, text string, sentenceCount int) (*Result, error) {
	stopTotal := s.metrics.StartTimer(telemetry.MetricTimeTotal)
	defer stopTotal()
	s.metrics.IncrementCounter(telemetry.MetricRequests, 1)
	s.metrics.RecordTimestamp(telemetry.MetricLastRequest)

	if err := validateRequest(text, sentenceCount); err != nil {
		countRejected(s.metrics, err)
		return nil, err
	}

	res, doc, err := s.run(ctx, text)
	if err != nil {
		return nil, err
	}

	chosen := selector.Select(res.Scores, doc, sentenceCount)
	res.Sentences = chosen
	res.Summary = selector.Join(chosen)
	s.metrics.IncrementCounter(telemetry.MetricSentencesOut, int64(len(chosen)))

	s.logger.Debug("Summary built",
		"sentences_in", res.TotalSentences,
		"sentences_out", len(chosen),
		"ranker", res.Ranker,
		"iterations", res.Iterations)
	return res, nil
}

// RankSentences scores every sentence of text without selecting any.
// The returned Result lists all sentences and leaves Summary empty.
func (s *LexRankSummarizer) RankSentences(ctx context.Context, text string) (*Result, error) {
	stopTotal := s.metrics.StartTimer(telemetry.MetricTimeTotal)
	defer stopTotal()
	s.metrics.IncrementCounter(telemetry.MetricRequests, 1)
	s.metrics.RecordTimestamp(telemetry.MetricLastRequest)

	if err := validateRequest(text, 1); err != nil {
		countRejected(s.metrics, err)
		return nil, err
	}

	res, doc, err := s.run(ctx, text)
	if err != nil {
		return nil, err
	}
	res.Sentences = doc.Sentences
	return res, nil
}

// run segments text and scores its sentences.
func (s *LexRankSummarizer) run(ctx context.Context, text string) (*Result, document.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.Initialize()

	doc := s.segment(text)
	s.metrics.IncrementCounter(telemetry.MetricSentencesIn, int64(doc.Len()))
	s.metrics.SetGauge(telemetry.MetricLastDocumentSize, float64(doc.Len()))

	res := &Result{
		Sentences:      []document.Sentence{},
		Scores:         rank.Scores{},
		TotalSentences: doc.Len(),
		Converged:      true,
		Ranker:         s.ranker.Name(),
	}
	if doc.IsEmpty() {
		s.metrics.IncrementCounter(telemetry.MetricEmptyInputs, 1)
		return res, doc, nil
	}

	scores, iterations, err := s.score(ctx, doc)
	var nce *rank.NonConvergenceError
	switch {
	case errors.As(err, &nce):
		res.Converged = false
		s.metrics.IncrementCounter(telemetry.MetricNonConvergence, 1)
		errortypes.LogError(s.logger, errortypes.NonConvergenceError(err, "LexRank did not converge").
			WithFields(map[string]interface{}{
				"iterations": nce.Iterations,
				"delta":      nce.Delta,
				"sentences":  doc.Len(),
			}))
	case err != nil:
		return nil, doc, s.pipelineError(err, doc.Len())
	}

	s.metrics.IncrementCounter(telemetry.MetricIterations, int64(iterations))
	s.metrics.SetGauge(telemetry.MetricLastIterations, float64(iterations))

	res.Scores = scores
	res.Iterations = iterations
	return res, doc, nil
}

// segment runs the normalizer, consulting the cache first.
func (s *LexRankSummarizer) segment(text string) document.Document {
	stop := s.metrics.StartTimer(telemetry.MetricTimeSegment)
	defer stop()

	key := util.HashText(s.normalizer.Fingerprint(), text)

	doc, ok, err := s.cache.Get(key)
	switch {
	case err != nil:
		s.metrics.IncrementCounter(telemetry.MetricCacheErrors, 1)
		errortypes.LogError(s.logger, errortypes.DatabaseError(err, "segment cache lookup failed").
			WithField("key", util.ShortHash(key)))
	case ok:
		s.metrics.IncrementCounter(telemetry.MetricCacheHits, 1)
		return doc
	}
	s.metrics.IncrementCounter(telemetry.MetricCacheMisses, 1)

	doc = s.normalizer.Segment(text)

	if err := s.cache.Put(key, doc); err != nil {
		s.metrics.IncrementCounter(telemetry.MetricCacheErrors, 1)
		errortypes.LogError(s.logger, errortypes.DatabaseError(err, "segment cache store failed").
			WithField("key", util.ShortHash(key)))
	} else if n, err := s.cache.Len(); err == nil {
		s.metrics.SetGauge(telemetry.MetricCacheSize, float64(n))
	}
	return doc
}

// score computes weights, the similarity graph and the ranking.
func (s *LexRankSummarizer) score(ctx context.Context, doc document.Document) (rank.Scores, int, error) {
	stopWeights := s.metrics.StartTimer(telemetry.MetricTimeWeights)
	vectors := weights.Compute(doc, s.weightOpts)
	stopWeights()

	stopGraph := s.metrics.StartTimer(telemetry.MetricTimeGraph)
	m, err := graph.Build(ctx, vectors, s.graphOpts)
	stopGraph()
	if err != nil {
		return nil, 0, err
	}

	stopRank := s.metrics.StartTimer(telemetry.MetricTimeRank)
	defer stopRank()
	if ir, ok := s.ranker.(rank.IterativeRanker); ok {
		return ir.RankWithIterations(ctx, m)
	}
	scores, err := s.ranker.Rank(ctx, m)
	return scores, 0, err
}

func countRejected(m *telemetry.MetricsCollector, err error) {
	if errortypes.IsEmptyInputError(err) {
		m.IncrementCounter(telemetry.MetricEmptyInputs, 1)
		return
	}
	m.IncrementCounter(telemetry.MetricInvalidRequests, 1)
}

// pipelineError classifies a failure of the graph or rank stage.
func (s *LexRankSummarizer) pipelineError(err error, sentences int) error {
	s.metrics.IncrementCounter(telemetry.MetricRequestsFailed, 1)

	var appErr *errortypes.AppError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.metrics.IncrementCounter(telemetry.MetricTimeouts, 1)
		appErr = errortypes.TimeoutError(err, "summarization timed out")
	case errors.Is(err, context.Canceled):
		appErr = errortypes.InternalError(err, "summarization canceled")
	default:
		appErr = errortypes.InternalError(err, "summarization failed")
	}
	appErr = appErr.WithFields(map[string]interface{}{
		"sentences": sentences,
		"ranker":    s.ranker.Name(),
	})
	errortypes.LogError(s.logger, appErr)
	return appErr
}
