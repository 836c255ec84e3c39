// Package server provides the MCP server implementation for the lexsummary tools.
package server

import (
	"context"

	"github.com/localrivet/lexsummary/internal/summarizer"
)

// SummaryToolServer defines the interface for the MCP server that handles
// summarization tool calls from MCP clients.
type SummaryToolServer interface {
	// Initialize initializes the server with dependencies and configurations.
	Initialize() error

	// Start starts the MCP server on the specified transport.
	Start() error

	// Stop gracefully shuts down the MCP server.
	Stop() error
}

// Backend is the summarization engine the tool handlers call into.
type Backend interface {
	// SummarizeDetailed selects sentenceCount sentences from text.
	SummarizeDetailed(ctx context.Context, text string, sentenceCount int) (*summarizer.Result, error)

	// DefaultSentenceCount is the configured summary length, used when a
	// request does not name one.
	DefaultSentenceCount() int

	// RankSentences scores every sentence of text.
	RankSentences(ctx context.Context, text string) (*summarizer.Result, error)

	// Health reports the summarizer's health.
	Health() (*summarizer.HealthReport, error)

	// ResetMetrics clears collected metrics.
	ResetMetrics() error
}
