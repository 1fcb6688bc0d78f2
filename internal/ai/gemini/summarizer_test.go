package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-ranker/internal/ai"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestSummarizerSummarize(t *testing.T) {
	stub := &stubGenerator{response: "\"Jane has five years of Go backend work.\"\n"}
	summarizer := NewSummarizer(stub, 0, zap.NewNop())

	summary, err := summarizer.Summarize(context.Background(), "Backend engineer", "Jane Doe\nGo services")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary != "Jane has five years of Go backend work." {
		t.Fatalf("unexpected summary: %q", summary)
	}

	if stub.lastSystem != ai.SystemInstruction {
		t.Fatalf("unexpected system instruction: %q", stub.lastSystem)
	}

	if !strings.Contains(stub.lastMessage, "Backend engineer") || !strings.Contains(stub.lastMessage, "Jane Doe\nGo services") {
		t.Fatalf("prompt is missing inputs: %s", stub.lastMessage)
	}
}

func TestSummarizerPropagatesError(t *testing.T) {
	genErr := errors.New("quota")
	summarizer := NewSummarizer(&stubGenerator{err: genErr}, 0, nil)

	if _, err := summarizer.Summarize(context.Background(), "job", "resume"); !errors.Is(err, genErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestSummarizerRejectsEmptyResponse(t *testing.T) {
	summarizer := NewSummarizer(&stubGenerator{response: "``` ```"}, 0, zap.NewNop())

	if _, err := summarizer.Summarize(context.Background(), "job", "resume"); err == nil {
		t.Fatal("expected error for empty summary")
	}
}

func TestSummarizerTruncatesDebugPreview(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	summarizer := NewSummarizer(&stubGenerator{response: "Fits."}, 10, zap.New(core))

	if _, err := summarizer.Summarize(context.Background(), strings.Repeat("job ", 50), "resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("gemini summary request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request entry, got %d", len(entries))
	}

	preview, _ := entries[0].ContextMap()["prompt_preview"].(string)
	if len([]rune(preview)) != 13 {
		t.Fatalf("expected truncated preview, got %q", preview)
	}
}
