// Package tools defines the MCP tool names and the request and response
// schemas of the lexsummary tool server.
package tools

const (
	// ToolSummarizeText is the name of the summarize_text MCP tool
	ToolSummarizeText = "summarize_text"

	// ToolRankSentences is the name of the rank_sentences MCP tool
	ToolRankSentences = "rank_sentences"

	// ToolSummarizerHealth is the name of the summarizer_health MCP tool
	ToolSummarizerHealth = "summarizer_health"

	// DefaultSentenceCount is used when a summarize_text request
	// does not specify sentence_count
	DefaultSentenceCount = 3

	// StatusSuccess and StatusError are the values of the Status fields.
	StatusSuccess = "success"
	StatusError   = "error"

	// EmptyInputMessage is returned when the text is blank.
	EmptyInputMessage = "Please enter some text first."
)

// SummarizeTextRequest defines the input schema for summarize_text tool
type SummarizeTextRequest struct {
	// Text is the document to summarize
	Text string `json:"text"`

	// SentenceCount is the number of sentences to keep
	// If not specified, DefaultSentenceCount will be used
	SentenceCount int `json:"sentence_count,omitempty"`
}

// SummarySentence is one sentence of a summary or ranking
type SummarySentence struct {
	// Index is the position of the sentence in the input, starting at 0
	Index int `json:"index"`

	// Text is the sentence as it appeared in the input
	Text string `json:"text"`

	// Score is the centrality score, omitted when not ranked
	Score float64 `json:"score,omitempty"`
}

// SummarizeTextResponse defines the output schema for summarize_text tool
type SummarizeTextResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Summary is the selected sentences joined by single spaces
	Summary string `json:"summary"`

	// Sentences are the selected sentences in original order
	Sentences []SummarySentence `json:"sentences"`

	// SentenceCount is the number of sentences in Summary
	SentenceCount int `json:"sentence_count"`

	// TotalSentences is the number of sentences found in the input
	TotalSentences int `json:"total_sentences"`

	// Converged is false when the ranking stopped at its iteration cap
	Converged bool `json:"converged"`

	// Iterations is the number of ranking iterations run
	Iterations int `json:"iterations"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`

	// Code classifies the error if Status is "error"
	Code string `json:"code,omitempty"`
}

// RankSentencesRequest defines the input schema for rank_sentences tool
type RankSentencesRequest struct {
	// Text is the document whose sentences are ranked
	Text string `json:"text"`
}

// RankSentencesResponse defines the output schema for rank_sentences tool
type RankSentencesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Sentences lists every input sentence with its score, in input order
	Sentences []SummarySentence `json:"sentences"`

	// Converged is false when the ranking stopped at its iteration cap
	Converged bool `json:"converged"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`

	// Code classifies the error if Status is "error"
	Code string `json:"code,omitempty"`
}

// SummarizerHealthRequest defines the input schema for summarizer_health tool
type SummarizerHealthRequest struct {
	// ResetMetrics clears the metrics after the report is built
	ResetMetrics bool `json:"reset_metrics,omitempty"`
}

// SummarizerHealthResponse defines the output schema for summarizer_health tool
type SummarizerHealthResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Health is the overall health ("healthy", "degraded" or "unhealthy")
	Health string `json:"health,omitempty"`

	// Report is the JSON encoded health report
	Report string `json:"report,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
