package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localrivet/lexsummary"
	"github.com/localrivet/lexsummary/internal/config"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/logger"
	"github.com/localrivet/lexsummary/internal/summarizer"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const (
	banner       = "=== AI TEXT SUMMARIZER (LexRank) ==="
	prompt       = "Paste your text below. When you're done, press Enter on an empty line:"
	summaryOpen  = "========== SUMMARY =========="
	summaryClose = "============================="
)

// maxLineSize bounds a single line of interactive input.
const maxLineSize = 4 * 1024 * 1024

// options holds the parsed command line.
type options struct {
	sentences   int
	countSet    bool
	configPath  string
	mcp         bool
	file        string
	ranker      string
	verbose     bool
	writeConfig bool
}

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.LoadConfigWithPath(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	applyOverrides(cfg, opts)

	appLogger := setupLogging(cfg, opts.verbose, stderr)
	cliLogger := appLogger.WithContext("cli")

	if opts.countSet && opts.sentences < 1 {
		fmt.Fprintf(stderr, "Error: sentence count must be at least 1, got %d\n", opts.sentences)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.writeConfig {
		if err := cfg.SaveToFile(opts.configPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		fmt.Fprintf(stdout, "Configuration written to %s\n", cfg.GetConfigPath())
		return exitOK
	}

	engine, err := lexsummary.NewEngine(lexsummary.EngineOptions{
		Config: cfg,
		Logger: appLogger.Slog(),
	})
	if err != nil {
		errortypes.LogError(appLogger.Slog(), err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errortypes.IsInvalidParameterError(err) || errortypes.IsValidationError(err) {
			return exitUsage
		}
		return exitFailure
	}
	defer engine.Close()

	if opts.mcp {
		setupSignalHandler(engine, cliLogger)
		cliLogger.Info("Starting MCP server on stdio")
		if err := engine.Start(); err != nil {
			errortypes.LogError(appLogger.Slog(), err)
			return exitFailure
		}
		return exitOK
	}

	var text string
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read %s: %v\n", opts.file, err)
			return exitFailure
		}
		text = strings.TrimSpace(string(data))
	} else {
		fmt.Fprintf(stdout, "\n%s\n", banner)
		fmt.Fprintf(stdout, "%s\n\n", prompt)
		text, err = readText(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read input: %v\n", err)
			return exitFailure
		}
	}

	if text == "" {
		fmt.Fprintln(stdout, "\nNo text entered. Exiting.")
		return exitOK
	}

	fmt.Fprintln(stdout, "\nSummarizing... Please wait...")
	fmt.Fprintln(stdout)

	res, err := engine.SummarizeDetailed(context.Background(), text, cfg.Summarizer.SentenceCount)
	if err != nil {
		errortypes.LogError(appLogger.Slog(), err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	cliLogger.Debug("Summarized %d of %d sentences with %s", len(res.Sentences), res.TotalSentences, res.Ranker)
	if !res.Converged {
		cliLogger.Warn("Ranking did not converge after %d iterations", res.Iterations)
	}

	fmt.Fprintf(stdout, "%s\n\n", summaryOpen)
	fmt.Fprintln(stdout, res.Summary)
	fmt.Fprintf(stdout, "\n%s\n\n", summaryClose)
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("lexsummary", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.sentences, "n", 0, "number of summary sentences (default from config)")
	fs.IntVar(&opts.sentences, "sentences", 0, "number of summary sentences (default from config)")
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigFilename, "path to the configuration file")
	fs.BoolVar(&opts.mcp, "mcp", false, "serve the summarization tools over MCP on stdio")
	fs.StringVar(&opts.file, "file", "", "read text from a file instead of stdin")
	fs.StringVar(&opts.ranker, "ranker", "", "ranking method: lexrank, degree or lead")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "write the effective configuration to the -config path and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" || f.Name == "sentences" {
			opts.countSet = true
		}
	})
	return opts, nil
}

// applyOverrides copies command line settings over the loaded configuration.
func applyOverrides(cfg *config.Config, opts *options) {
	if opts.countSet {
		cfg.Summarizer.SentenceCount = opts.sentences
	}
	switch opts.ranker {
	case "":
	case summarizer.ProviderLead:
		cfg.Summarizer.Provider = summarizer.ProviderLead
	default:
		cfg.Summarizer.Provider = summarizer.ProviderLexRank
		cfg.Ranker.Algorithm = opts.ranker
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
}

// setupLogging configures and returns the application logger
func setupLogging(cfg *config.Config, verbose bool, out io.Writer) *logger.Logger {
	level := cfg.Logging.Level
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" && !verbose {
		level = levelStr
	}

	appLogger := logger.FromSettings(level, cfg.Logging.Format, out)
	logger.SetDefaultLogger(appLogger)
	slog.SetDefault(appLogger.Slog())

	return appLogger
}

// readText reads lines until an empty line or EOF and joins them with
// single spaces. A read error, including a line over maxLineSize, is
// returned instead of a truncated text.
func readText(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, " ")), nil
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(engine *lexsummary.Engine, log *logger.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		if err := engine.Close(); err != nil {
			errortypes.LogError(log.Slog(), err)
		}

		log.Info("Shutdown complete")
		os.Exit(0)
	}()
}
