package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/localrivet/gomcp/logx"
	"github.com/localrivet/gomcp/server"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/rank"
	"github.com/localrivet/lexsummary/internal/summarizer"
	"github.com/localrivet/lexsummary/internal/tools"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// MCPSummaryToolServer implements the SummaryToolServer interface
// for handling MCP tool calls related to summarization.
type MCPSummaryToolServer struct {
	backend   Backend
	logger    *slog.Logger
	transport logx.Logger
	mcpServer server.Server
}

// NewSummaryToolServer creates a new MCPSummaryToolServer instance.
// transport may be nil; it receives transport lifecycle messages.
func NewSummaryToolServer(backend Backend, logger *slog.Logger, transport logx.Logger) *MCPSummaryToolServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MCPSummaryToolServer{
		backend:   backend,
		logger:    logger,
		transport: transport,
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPSummaryToolServer) Initialize() error {
	s.logger.Info("Initializing MCP Summary Tool Server")

	if s.backend == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	srv := server.NewServer("lexsummary")

	srv = srv.Tool(tools.ToolSummarizeText,
		"Summarize text by extracting its most central sentences (LexRank)",
		s.handleSummarizeText)

	srv = srv.Tool(tools.ToolRankSentences,
		"Score every sentence of a text by LexRank centrality",
		s.handleRankSentences)

	srv = srv.Tool(tools.ToolSummarizerHealth,
		"Report summarizer health and pipeline metrics",
		s.handleSummarizerHealth)

	s.mcpServer = srv
	s.logger.Info("MCP Summary Tool Server initialized successfully", "tool_count", 3)
	return nil
}

// Start starts the MCP server on the stdio transport.
func (s *MCPSummaryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	s.logger.Info("Starting MCP Summary Tool Server")
	if s.transport != nil {
		s.transport.Info("lexsummary MCP server listening on stdio")
	}

	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPSummaryToolServer) Stop() error {
	s.logger.Info("Stopping MCP Summary Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// handleSummarizeText handles the summarize_text MCP tool call.
func (s *MCPSummaryToolServer) handleSummarizeText(ctx *server.Context, req tools.SummarizeTextRequest) (tools.SummarizeTextResponse, error) {
	s.logger.Info("Processing summarize_text request", "text_length", len(req.Text), "sentence_count", req.SentenceCount)

	response := tools.SummarizeTextResponse{
		Status:    tools.StatusSuccess,
		Sentences: []tools.SummarySentence{},
	}

	if strings.TrimSpace(req.Text) == "" {
		response.Status = tools.StatusError
		response.Error = tools.EmptyInputMessage
		response.Code = StatusCodeEmptyInput
		s.logger.Warn("summarize_text rejected: empty text")
		return response, nil
	}

	count := req.SentenceCount
	if count == 0 {
		count = s.backend.DefaultSentenceCount()
		if count < 1 {
			count = tools.DefaultSentenceCount
		}
		s.logger.Debug("Using default sentence count for summarize_text", "sentence_count", count)
	}

	res, err := s.backend.SummarizeDetailed(context.Background(), req.Text, count)
	if err != nil {
		errResp := errorToResponse(err)
		errortypes.LogError(s.logger, err)

		response.Status = errResp.Status
		response.Error = errResp.Message
		response.Code = errResp.Code
		return response, nil
	}

	for _, sent := range res.Sentences {
		response.Sentences = append(response.Sentences, tools.SummarySentence{
			Index: sent.Index,
			Text:  sent.Text,
			Score: scoreOf(res.Scores, sent.Index),
		})
	}
	response.Summary = res.Summary
	response.SentenceCount = len(res.Sentences)
	response.TotalSentences = res.TotalSentences
	response.Converged = res.Converged
	response.Iterations = res.Iterations

	s.logger.Info("Successfully summarized text",
		"sentences_in", res.TotalSentences,
		"sentences_out", response.SentenceCount,
		"converged", res.Converged)
	return response, nil
}

// handleRankSentences handles the rank_sentences MCP tool call.
func (s *MCPSummaryToolServer) handleRankSentences(ctx *server.Context, req tools.RankSentencesRequest) (tools.RankSentencesResponse, error) {
	s.logger.Info("Processing rank_sentences request", "text_length", len(req.Text))

	response := tools.RankSentencesResponse{
		Status:    tools.StatusSuccess,
		Sentences: []tools.SummarySentence{},
	}

	if strings.TrimSpace(req.Text) == "" {
		response.Status = tools.StatusError
		response.Error = tools.EmptyInputMessage
		response.Code = StatusCodeEmptyInput
		return response, nil
	}

	res, err := s.backend.RankSentences(context.Background(), req.Text)
	if err != nil {
		errResp := errorToResponse(err)
		errortypes.LogError(s.logger, err)

		response.Status = errResp.Status
		response.Error = errResp.Message
		response.Code = errResp.Code
		return response, nil
	}

	for _, sent := range res.Sentences {
		response.Sentences = append(response.Sentences, tools.SummarySentence{
			Index: sent.Index,
			Text:  sent.Text,
			Score: scoreOf(res.Scores, sent.Index),
		})
	}
	response.Converged = res.Converged

	s.logger.Info("Successfully ranked sentences", "count", len(response.Sentences))
	return response, nil
}

// handleSummarizerHealth handles the summarizer_health MCP tool call.
func (s *MCPSummaryToolServer) handleSummarizerHealth(ctx *server.Context, req tools.SummarizerHealthRequest) (tools.SummarizerHealthResponse, error) {
	s.logger.Info("Processing summarizer_health request", "reset_metrics", req.ResetMetrics)

	response := tools.SummarizerHealthResponse{
		Status: tools.StatusSuccess,
	}

	report, err := s.backend.Health()
	if err != nil {
		err = errortypes.InternalError(err, "failed to build health report")
		errortypes.LogError(s.logger, err)

		response.Status = tools.StatusError
		response.Error = err.Error()
		return response, nil
	}

	reportJSON, err := marshalReport(report)
	if err != nil {
		errortypes.LogError(s.logger, err)
		response.Status = tools.StatusError
		response.Error = err.Error()
		return response, nil
	}
	response.Health = string(report.Status)
	response.Report = reportJSON

	if req.ResetMetrics {
		if err := s.backend.ResetMetrics(); err != nil {
			s.logger.Warn("Failed to reset metrics", "error", err)
		}
	}

	return response, nil
}

func scoreOf(scores rank.Scores, i int) float64 {
	if i >= 0 && i < len(scores) {
		return scores[i]
	}
	return 0
}
