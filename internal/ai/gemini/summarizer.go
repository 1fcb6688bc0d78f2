package gemini

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/utils"
)

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Summarizer produces one-sentence fit summaries with Gemini.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewSummarizer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Summarizer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, jobDescription, resumeText string) (string, error) {
	prompt := ai.BuildPrompt(jobDescription, resumeText)

	s.logger.Debug("gemini summary request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, ai.SystemInstruction, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("gemini summary response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	summary := ai.CleanResponse(raw)
	if summary == "" {
		return "", errors.New("gemini returned an empty summary")
	}
	return summary, nil
}
