package tools

import (
	"encoding/json"
	"testing"
)

func TestSummarizeTextRequest_OptionalCount(t *testing.T) {
	var req SummarizeTextRequest
	if err := json.Unmarshal([]byte(`{"text":"One. Two."}`), &req); err != nil {
		t.Fatalf("Failed to unmarshal SummarizeTextRequest: %v", err)
	}
	if req.Text != "One. Two." {
		t.Errorf("Expected Text='One. Two.', got '%s'", req.Text)
	}
	if req.SentenceCount != 0 {
		t.Errorf("Expected zero SentenceCount when omitted, got %d", req.SentenceCount)
	}

	data, err := json.Marshal(SummarizeTextRequest{Text: "x"})
	if err != nil {
		t.Fatalf("Failed to marshal SummarizeTextRequest: %v", err)
	}
	if string(data) != `{"text":"x"}` {
		t.Errorf("Expected sentence_count to be omitted, got %s", data)
	}
}

func TestSummarizeTextResponse_ErrorFields(t *testing.T) {
	success, err := json.Marshal(SummarizeTextResponse{
		Status:    StatusSuccess,
		Summary:   "One.",
		Sentences: []SummarySentence{{Index: 0, Text: "One."}},
	})
	if err != nil {
		t.Fatalf("Failed to marshal SummarizeTextResponse: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(success, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}
	for _, key := range []string{"error", "code"} {
		if _, ok := jsonMap[key]; ok {
			t.Errorf("Expected %s to be omitted on success, got %v", key, jsonMap[key])
		}
	}
	sentences, ok := jsonMap["sentences"].([]interface{})
	if !ok || len(sentences) != 1 {
		t.Fatalf("Expected one sentence, got %v", jsonMap["sentences"])
	}
	if _, ok := sentences[0].(map[string]interface{})["score"]; ok {
		t.Errorf("Expected unranked sentence to omit score")
	}

	failure, _ := json.Marshal(SummarizeTextResponse{Status: StatusError, Error: EmptyInputMessage, Code: "EMPTY_INPUT"})
	jsonMap = nil
	if err := json.Unmarshal(failure, &jsonMap); err != nil {
		t.Fatalf("Failed to unmarshal JSON into map: %v", err)
	}
	if jsonMap["error"] != EmptyInputMessage || jsonMap["code"] != "EMPTY_INPUT" {
		t.Errorf("Unexpected error fields: %v", jsonMap)
	}
	// Empty sentence lists are encoded as null, not omitted
	if _, ok := jsonMap["sentences"]; !ok {
		t.Errorf("Expected sentences key to be present")
	}
}

func TestToolNames(t *testing.T) {
	names := map[string]bool{}
	for _, name := range []string{ToolSummarizeText, ToolRankSentences, ToolSummarizerHealth} {
		if names[name] {
			t.Errorf("Duplicate tool name %q", name)
		}
		names[name] = true
	}
	if DefaultSentenceCount < 1 {
		t.Errorf("DefaultSentenceCount = %d, want >= 1", DefaultSentenceCount)
	}
}
