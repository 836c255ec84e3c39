// Package lexsummary is an extractive text summarizer. It ranks the
// sentences of a text by LexRank centrality and returns the most central
// ones in their original order.
package lexsummary

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/localrivet/lexsummary/internal/config"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/graph"
	"github.com/localrivet/lexsummary/internal/rank"
	"github.com/localrivet/lexsummary/internal/segmentcache"
	"github.com/localrivet/lexsummary/internal/server"
	"github.com/localrivet/lexsummary/internal/summarizer"
	"github.com/localrivet/lexsummary/internal/textnorm"
	"github.com/localrivet/lexsummary/internal/weights"
)

// Config represents the configuration for the summarizer.
type Config = config.Config

// Result describes one summarization.
type Result = summarizer.Result

// HealthReport describes the summarizer's health.
type HealthReport = summarizer.HealthReport

var (
	// ErrEmptyInput is returned for empty or whitespace-only text.
	ErrEmptyInput = errortypes.ErrEmptyInput

	// ErrInvalidSentenceCount is returned for a sentence count below 1.
	ErrInvalidSentenceCount = errortypes.ErrInvalidSentenceCount
)

// Engine owns a configured summarization pipeline.
type Engine struct {
	config     *config.Config
	cache      segmentcache.Cache
	lexrank    *summarizer.LexRankSummarizer
	summarizer summarizer.SentenceSummarizer
	logger     *slog.Logger

	serverMu   sync.Mutex
	toolServer server.SummaryToolServer
}

// EngineOptions defines the options for creating a new Engine.
type EngineOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, a stderr logger at the configured level is used.
}

// NewEngine creates a new Engine with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
func NewEngine(opts EngineOptions) (*Engine, error) {
	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
	} else if opts.ConfigPath != "" {
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = DefaultConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	logger.Debug("Configuration resolved for engine initialization", "path", cfg.GetConfigPath())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache, lexrank, active, err := CreateComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Summarization engine initialized",
		"provider", active.Name(),
		"sentence_count", cfg.Summarizer.SentenceCount)
	return &Engine{
		config:     cfg,
		cache:      cache,
		lexrank:    lexrank,
		summarizer: active,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// Summarize returns the sentenceCount most central sentences of text,
// joined by single spaces in their original order.
func (e *Engine) Summarize(ctx context.Context, text string, sentenceCount int) (string, error) {
	res, err := e.SummarizeDetailed(ctx, text, sentenceCount)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// SummarizeDetailed is Summarize with per-sentence details.
func (e *Engine) SummarizeDetailed(ctx context.Context, text string, sentenceCount int) (*Result, error) {
	return e.summarizer.SummarizeDetailed(ctx, text, sentenceCount)
}

// RankSentences scores every sentence of text with the configured ranker.
func (e *Engine) RankSentences(ctx context.Context, text string) (*Result, error) {
	return e.lexrank.RankSentences(ctx, text)
}

// DefaultSentenceCount returns the configured summary length.
func (e *Engine) DefaultSentenceCount() int {
	return e.config.Summarizer.SentenceCount
}

// Health reports pipeline health and metrics. Metrics cover every
// request of the active summarizer.
func (e *Engine) Health() (*HealthReport, error) {
	report, err := summarizer.CreateHealthReport(e.lexrank)
	if err != nil {
		return nil, err
	}
	report.Ranker = e.summarizer.Name()
	return report, nil
}

// ResetMetrics clears the pipeline metrics.
func (e *Engine) ResetMetrics() error {
	return summarizer.ResetMetrics(e.lexrank)
}

// Start serves the summarization tools over MCP on stdio. It blocks until
// the client closes stdin.
func (e *Engine) Start() error {
	e.serverMu.Lock()
	if e.toolServer == nil {
		srv := server.NewSummaryToolServer(e, e.logger, config.GetLoggerFromConfig(e.config))
		if err := srv.Initialize(); err != nil {
			e.serverMu.Unlock()
			return errortypes.ConfigError(err, "failed to initialize MCP tool server")
		}
		e.toolServer = srv
	}
	srv := e.toolServer
	e.serverMu.Unlock()

	e.logger.Info("Starting lexsummary MCP service")
	return srv.Start()
}

// Close stops the tool server, if running, and releases the segment cache.
func (e *Engine) Close() error {
	e.serverMu.Lock()
	srv := e.toolServer
	e.serverMu.Unlock()

	if srv != nil {
		if err := srv.Stop(); err != nil {
			e.logger.Error("Error stopping tool server", "error", err)
			return err
		}
	}

	if err := e.cache.Close(); err != nil {
		err = errortypes.DatabaseError(err, "failed to close segment cache")
		errortypes.LogError(e.logger, err)
		return err
	}
	return nil
}

// CreateComponents builds the segment cache, the LexRank summarizer and the
// summarizer selected by cfg.Summarizer.Provider. The LexRank summarizer is
// always built since ranking and health reporting use it.
func CreateComponents(cfg *Config, logger *slog.Logger) (segmentcache.Cache, *summarizer.LexRankSummarizer, summarizer.SentenceSummarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache := newCache(cfg, logger)

	opts := SummarizerOptions(cfg)
	opts.Cache = cache
	opts.Logger = logger
	opts.Normalizer.Logger = logger

	lexrank, err := summarizer.NewLexRankSummarizer(opts)
	if err != nil {
		cache.Close()
		return nil, nil, nil, err
	}
	lexrank.Initialize()

	var active summarizer.SentenceSummarizer = lexrank
	switch cfg.Summarizer.Provider {
	case summarizer.ProviderLexRank, "":
	case summarizer.ProviderLead:
		lead, err := summarizer.NewLeadSummarizer(cfg.Summarizer.SentenceCount, opts.Normalizer)
		if err != nil {
			cache.Close()
			return nil, nil, nil, err
		}
		// Health is reported from the LexRank collector
		lead.SetMetrics(lexrank.GetMetrics())
		lead.Initialize()
		active = lead
	default:
		logger.Warn("Unknown summarizer provider, using lexrank", "provider", cfg.Summarizer.Provider)
	}

	return cache, lexrank, active, nil
}

// SummarizerOptions maps configuration onto pipeline options.
func SummarizerOptions(cfg *Config) summarizer.Options {
	opts := summarizer.DefaultOptions()
	opts.SentenceCount = cfg.Summarizer.SentenceCount
	opts.Timeout = cfg.Summarizer.Timeout
	opts.Normalizer = textnorm.Options{
		Language:        cfg.Normalizer.Language,
		Segmenter:       cfg.Normalizer.Segmenter,
		Stemmer:         cfg.Normalizer.Stemmer,
		StopWords:       cfg.Normalizer.StopWords,
		ExtraStopWords:  cfg.Normalizer.ExtraStopWords,
		StripDiacritics: cfg.Normalizer.StripDiacritics,
	}
	opts.Weights = weights.Options{TF: weights.TFMode(cfg.Weights.TFMode)}
	opts.Graph = graph.Options{
		Threshold: cfg.Ranker.Threshold,
		Binary:    cfg.Ranker.Binary,
		Workers:   cfg.Ranker.Workers,
	}
	opts.Ranker = cfg.Ranker.Algorithm
	opts.Rank = rank.Options{
		Damping:       cfg.Ranker.Damping,
		Epsilon:       cfg.Ranker.Epsilon,
		MaxIterations: cfg.Ranker.MaxIterations,
	}
	return opts
}

// newCache opens the configured segment cache, or a no-op cache when
// caching is disabled or the database cannot be opened.
func newCache(cfg *Config, logger *slog.Logger) segmentcache.Cache {
	if !cfg.Cache.Enabled {
		return segmentcache.Noop{}
	}

	cache := segmentcache.NewSQLiteCache(cfg.Cache.MaxEntries)
	if err := cache.Initialize(cfg.Cache.SQLitePath); err != nil {
		errortypes.LogError(logger, errortypes.DatabaseError(err, "segment cache unavailable, continuing without it").
			WithField("path", cfg.Cache.SQLitePath))
		return segmentcache.Noop{}
	}
	logger.Debug("Segment cache initialized", "path", cfg.Cache.SQLitePath, "max_entries", cfg.Cache.MaxEntries)
	return cache
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
	defaultErr    error
)

// Default returns the process-wide engine built from DefaultConfig.
func Default() (*Engine, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = NewEngine(EngineOptions{})
	})
	return defaultEngine, defaultErr
}

// Summarize summarizes text with the default engine.
//
// Empty or whitespace-only text returns ("", ErrEmptyInput) without running
// the pipeline. A sentenceCount below 1 is rejected. A sentenceCount at or
// above the number of sentences returns every sentence in order.
func Summarize(text string, sentenceCount int) (string, error) {
	e, err := Default()
	if err != nil {
		return "", err
	}
	return e.Summarize(context.Background(), text, sentenceCount)
}
