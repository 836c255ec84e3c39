package main

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleText = "Rivers carry sediment from the mountains to the sea.\n" +
	"The sediment builds deltas where rivers meet the sea.\n" +
	"Deltas are among the most fertile regions on earth.\n" +
	"Farmers have settled on river deltas for thousands of years.\n"

func TestReadText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"blank first line", "\nignored text\n", ""},
		{"joins lines", "first line\nsecond line\n", "first line second line"},
		{"stops at blank line", "kept\n   \ndropped\n", "kept"},
		{"trims", "  padded  \n", "padded"},
		{"no trailing newline", "last line", "last line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readText(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("readText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("readText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadText_LineTooLong(t *testing.T) {
	input := "short line\n" + strings.Repeat("x", maxLineSize+1) + "\n"

	got, err := readText(strings.NewReader(input))
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("readText() error = %v, want bufio.ErrTooLong", err)
	}
	if got != "" {
		t.Errorf("readText() = %q, want empty on error", got)
	}
}

func TestRun_InputTooLong(t *testing.T) {
	var stdout, stderr bytes.Buffer
	input := strings.NewReader(strings.Repeat("word ", maxLineSize/5+1) + "\n")
	code := run([]string{"-config", missingConfig(t)}, input, &stdout, &stderr)

	if code != exitFailure {
		t.Errorf("run() = %d, want %d", code, exitFailure)
	}
	if strings.Contains(stdout.String(), summaryOpen) {
		t.Errorf("no summary should be printed for unreadable input")
	}
	if !strings.Contains(stderr.String(), "failed to read input") {
		t.Errorf("stderr = %q, want read error", stderr.String())
	}
}

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.json")
}

func TestRun_NoText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", missingConfig(t)}, strings.NewReader("\n"), &stdout, &stderr)

	if code != exitOK {
		t.Errorf("run() = %d, want %d (stderr: %s)", code, exitOK, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "=== AI TEXT SUMMARIZER (LexRank) ===") {
		t.Errorf("output missing banner: %q", out)
	}
	if !strings.Contains(out, "No text entered. Exiting.") {
		t.Errorf("output missing exit message: %q", out)
	}
}

func TestRun_Summarizes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", missingConfig(t), "-n", "2"}, strings.NewReader(sampleText+"\n"), &stdout, &stderr)

	if code != exitOK {
		t.Fatalf("run() = %d, want %d (stderr: %s)", code, exitOK, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Summarizing... Please wait...", summaryOpen, summaryClose} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}

	start := strings.Index(out, summaryOpen) + len(summaryOpen)
	end := strings.Index(out, summaryClose)
	summary := strings.TrimSpace(out[start:end])
	if n := strings.Count(summary, "."); n != 2 {
		t.Errorf("summary %q has %d sentences, want 2", summary, n)
	}
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(sampleText), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", missingConfig(t), "-file", path, "-ranker", "lead", "-sentences", "1"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d (stderr: %s)", code, exitOK, stderr.String())
	}
	if strings.Contains(stdout.String(), banner) {
		t.Errorf("file mode should not print the banner")
	}
	if !strings.Contains(stdout.String(), "Rivers carry sediment from the mountains to the sea.") {
		t.Errorf("lead summary missing first sentence: %q", stdout.String())
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero count", []string{"-n", "0"}},
		{"negative count", []string{"-sentences", "-4"}},
		{"unknown ranker", []string{"-ranker", "hits"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-config", missingConfig(t)}, tt.args...)
			if code := run(args, strings.NewReader(sampleText), &stdout, &stderr); code != exitUsage {
				t.Errorf("run(%v) = %d, want %d", tt.args, code, exitUsage)
			}
		})
	}
}

func TestRun_WriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexsummary.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "-n", "4", "-write-config"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d (stderr: %s)", code, exitOK, stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `"sentence_count": 4`) {
		t.Errorf("written config missing sentence count override: %s", data)
	}
}
