// Package openai implements fit summaries on top of the OpenAI chat API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/utils"
)

const (
	defaultModel        = goopenai.GPT3Dot5Turbo
	defaultMaxTokens    = 70
	defaultMaxLogLength = 200
	temperature         = 0.2
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Summarizer produces one-sentence fit summaries with an OpenAI chat model.
type Summarizer struct {
	client    chatCompleter
	model     string
	maxTokens int
	maxLogLen int
	logger    *zap.Logger
}

// Config configures the OpenAI summarizer.
type Config struct {
	APIKey       string
	Model        string
	MaxTokens    int
	MaxLogLength int
}

func NewSummarizer(cfg Config, logger *zap.Logger) (*Summarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	return newSummarizer(goopenai.NewClient(apiKey), cfg, logger), nil
}

func newSummarizer(client chatCompleter, cfg Config, logger *zap.Logger) *Summarizer {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Summarizer{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		maxLogLen: maxLogLen,
		logger:    logger,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, jobDescription, resumeText string) (string, error) {
	prompt := ai.BuildPrompt(jobDescription, resumeText)

	s.logger.Debug("openai summary request",
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: ai.SystemInstruction},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	s.logger.Debug("openai summary response",
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	summary := ai.CleanResponse(raw)
	if summary == "" {
		return "", errors.New("openai returned an empty summary")
	}
	return summary, nil
}

func (s *Summarizer) Model() string {
	return s.model
}
