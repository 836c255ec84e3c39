package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
	"github.com/localrivet/gomcp/logx"
	"github.com/localrivet/lexsummary/internal/errortypes"
)

// Config represents the lexsummary configuration
type Config struct {
	// Summarizer contains request-level settings.
	Summarizer struct {
		// Provider selects the summarizer ("lexrank" or "lead").
		Provider string `json:"provider" env:"SUMMARIZER_PROVIDER"`

		// SentenceCount is the default number of sentences in a summary.
		SentenceCount int `json:"sentence_count" env:"SENTENCE_COUNT" validate:"min:1"`

		// Timeout bounds one summarization call. Zero disables it.
		Timeout time.Duration `json:"timeout" env:"SUMMARIZER_TIMEOUT"`
	} `json:"summarizer"`

	// Ranker contains centrality ranking settings.
	Ranker struct {
		// Algorithm is the ranking algorithm ("lexrank" or "degree").
		Algorithm string `json:"algorithm" env:"RANKER_ALGORITHM"`

		// Damping is the probability of following a graph edge.
		Damping float64 `json:"damping" env:"RANKER_DAMPING"`

		// Epsilon is the L1 convergence tolerance of the power iteration.
		Epsilon float64 `json:"epsilon" env:"RANKER_EPSILON"`

		// MaxIterations caps the power iteration.
		MaxIterations int `json:"max_iterations" env:"RANKER_MAX_ITERATIONS" validate:"min:1"`

		// Threshold zeroes similarities below it.
		Threshold float64 `json:"threshold" env:"RANKER_THRESHOLD"`

		// Binary turns the similarity graph into an unweighted graph.
		Binary bool `json:"binary" env:"RANKER_BINARY"`

		// Workers bounds parallel similarity computation. Zero means GOMAXPROCS.
		Workers int `json:"workers" env:"RANKER_WORKERS"`
	} `json:"ranker"`

	// Weights contains term weighting settings.
	Weights struct {
		// TFMode scales term counts ("raw", "log" or "max").
		TFMode string `json:"tf_mode" env:"WEIGHTS_TF_MODE"`
	} `json:"weights"`

	// Normalizer contains sentence segmentation and tokenization settings.
	Normalizer struct {
		Language        string   `json:"language" env:"NORMALIZER_LANGUAGE" validate:"required"`
		Segmenter       string   `json:"segmenter" env:"NORMALIZER_SEGMENTER"`
		Stemmer         string   `json:"stemmer" env:"NORMALIZER_STEMMER"`
		StopWords       bool     `json:"stop_words" env:"NORMALIZER_STOP_WORDS"`
		ExtraStopWords  []string `json:"extra_stop_words" env:"NORMALIZER_EXTRA_STOP_WORDS"`
		StripDiacritics bool     `json:"strip_diacritics" env:"NORMALIZER_STRIP_DIACRITICS"`
	} `json:"normalizer"`

	// Cache contains segment cache settings.
	Cache struct {
		// Enabled turns on caching of normalizer output.
		Enabled bool `json:"enabled" env:"CACHE_ENABLED"`

		// SQLitePath is the SQLite database location. ":memory:" keeps it in process.
		SQLitePath string `json:"sqlite_path" env:"CACHE_SQLITE_PATH"`

		// MaxEntries bounds the number of cached documents.
		MaxEntries int `json:"max_entries" env:"CACHE_MAX_ENTRIES"`
	} `json:"cache"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath string     `json:"-"`
	mutex      sync.Mutex `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".lexsummaryconfig"
	DefaultEnvPrefix      = "LEXSUMMARY"
	DefaultProvider       = "lexrank"
	DefaultSentenceCount  = 3
	DefaultTimeout        = 30 * time.Second
	DefaultAlgorithm      = "lexrank"
	DefaultDamping        = 0.85
	DefaultEpsilon        = 1e-4
	DefaultMaxIterations  = 100
	DefaultThreshold      = 1e-9
	DefaultTFMode         = "raw"
	DefaultLanguage       = "english"
	DefaultSegmenter      = "punkt"
	DefaultStemmer        = "snowball"
	DefaultCachePath      = ":memory:"
	DefaultCacheEntries   = 256
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Summarizer.Provider = DefaultProvider
	config.Summarizer.SentenceCount = DefaultSentenceCount
	config.Summarizer.Timeout = DefaultTimeout
	config.Ranker.Algorithm = DefaultAlgorithm
	config.Ranker.Damping = DefaultDamping
	config.Ranker.Epsilon = DefaultEpsilon
	config.Ranker.MaxIterations = DefaultMaxIterations
	config.Ranker.Threshold = DefaultThreshold
	config.Weights.TFMode = DefaultTFMode
	config.Normalizer.Language = DefaultLanguage
	config.Normalizer.Segmenter = DefaultSegmenter
	config.Normalizer.Stemmer = DefaultStemmer
	config.Normalizer.StopWords = true
	config.Cache.Enabled = true
	config.Cache.SQLitePath = DefaultCachePath
	config.Cache.MaxEntries = DefaultCacheEntries
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// Validate checks value ranges the struct tags cannot express.
func (c *Config) Validate() error {
	switch {
	case c.Summarizer.SentenceCount < 1:
		return errortypes.ValidationError(fmt.Errorf("sentence_count must be at least 1, got %d", c.Summarizer.SentenceCount), "invalid summarizer configuration")
	case c.Summarizer.Timeout < 0:
		return errortypes.ValidationError(fmt.Errorf("timeout must not be negative, got %v", c.Summarizer.Timeout), "invalid summarizer configuration")
	case c.Ranker.Damping <= 0 || c.Ranker.Damping > 1:
		return errortypes.ValidationError(fmt.Errorf("damping must be in (0, 1], got %v", c.Ranker.Damping), "invalid ranker configuration")
	case c.Ranker.Epsilon <= 0:
		return errortypes.ValidationError(fmt.Errorf("epsilon must be positive, got %v", c.Ranker.Epsilon), "invalid ranker configuration")
	case c.Ranker.MaxIterations < 1:
		return errortypes.ValidationError(fmt.Errorf("max_iterations must be at least 1, got %d", c.Ranker.MaxIterations), "invalid ranker configuration")
	case c.Ranker.Threshold < 0 || c.Ranker.Threshold > 1:
		return errortypes.ValidationError(fmt.Errorf("threshold must be in [0, 1], got %v", c.Ranker.Threshold), "invalid ranker configuration")
	case c.Cache.Enabled && c.Cache.MaxEntries < 1:
		return errortypes.ValidationError(fmt.Errorf("cache max_entries must be at least 1, got %d", c.Cache.MaxEntries), "invalid cache configuration")
	}
	return nil
}

// LoadConfigWithPath loads the configuration from a specific path.
// Environment variables prefixed with LEXSUMMARY_ override file values.
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Configuration loading logs go to stderr so stdout stays clean for the CLI and MCP transport
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	loader := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider())

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
	} else {
		loader = loader.WithProvider(configurator.NewFileProvider(configPath))
	}

	loader = loader.
		WithProvider(configurator.NewEnvProvider(DefaultEnvPrefix)).
		WithValidator(configurator.NewDefaultValidator())

	if err := loader.Load(context.Background(), cfg); err != nil {
		return nil, errortypes.ConfigError(err, "failed to load configuration").WithField("path", configPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.configPath = configPath

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	c.configPath = path

	return nil
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// SlogLevel maps the configured level name to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLoggerFromConfig creates a gomcp logx.Logger based on the configuration
func GetLoggerFromConfig(cfg *Config) logx.Logger {
	return logx.NewLogger(cfg.Logging.Level)
}
