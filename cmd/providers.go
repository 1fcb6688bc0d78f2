package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/ai/gemini"
	"github.com/spigell/candidate-ranker/internal/ai/openai"
	"github.com/spigell/candidate-ranker/internal/embedding"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/secrets"
)

var errSummariesDisabled = errors.New("summaries are disabled")

func apiKeySource(provider, file string) secrets.Source {
	switch provider {
	case embedding.ProviderOpenAI:
		return secrets.Source{Name: "openai api key", File: file, Env: "OPENAI_API_KEY"}
	default:
		return secrets.Source{Name: "gemini api key", File: file, Env: "GEMINI_API_KEY"}
	}
}

func normalizeProvider(provider, fallback string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return fallback
	}
	return provider
}

// newEmbedder builds the embedding service. The model itself is loaded lazily
// on the first Embed call.
func newEmbedder(cfg *EmbeddingConfig, log *zap.Logger) (*embedding.Service, error) {
	if cfg == nil {
		cfg = &EmbeddingConfig{}
	}

	provider := normalizeProvider(cfg.Provider, embedding.ProviderHashing)

	var loader embedding.Loader
	switch provider {
	case embedding.ProviderHashing:
		loader = embedding.NewHashingLoader(cfg.Dimension)
	case embedding.ProviderGemini, embedding.ProviderOpenAI:
		key, err := secrets.Load(apiKeySource(provider, cfg.APIKeyFile))
		if err != nil {
			return nil, err
		}
		if provider == embedding.ProviderGemini {
			loader = embedding.NewGeminiLoader(key, cfg.Model)
		} else {
			loader = embedding.NewOpenAILoader(key, cfg.Model)
		}
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = provider
	}

	embedLogger := logger.WithCommonFields(log, provider, cfg.Model)
	return embedding.NewService(embedding.NewHandle(model, loader), cfg.BatchSize, embedLogger), nil
}

// newSummarizer returns errSummariesDisabled when summaries are switched off
// and a secrets error when the provider key is missing.
func newSummarizer(ctx context.Context, cfg *SummaryConfig, log *zap.Logger) (ai.Summarizer, error) {
	if cfg == nil || !cfg.Enabled || cfg.TopN <= 0 {
		return nil, errSummariesDisabled
	}

	provider := normalizeProvider(cfg.Provider, embedding.ProviderGemini)
	switch provider {
	case embedding.ProviderGemini:
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		key, err := secrets.Load(apiKeySource(provider, gcfg.APIKeyFile))
		if err != nil {
			return nil, err
		}

		genLogger := logger.WithCommonFields(log, provider, gcfg.Model).With(
			zap.Int("ai_retry_attempts", gcfg.MaxRetries),
		)
		generator, err := gemini.NewGenerator(ctx, key, gcfg.Model, gcfg.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}

		return gemini.NewSummarizer(generator, gcfg.MaxLogLength, logger.WithCommonFields(log, provider, generator.Model())), nil
	case embedding.ProviderOpenAI:
		ocfg := cfg.OpenAI
		if ocfg == nil {
			ocfg = &OpenAIConfig{}
		}

		key, err := secrets.Load(apiKeySource(provider, ocfg.APIKeyFile))
		if err != nil {
			return nil, err
		}

		summarizer, err := openai.NewSummarizer(openai.Config{
			APIKey:       key,
			Model:        ocfg.Model,
			MaxTokens:    ocfg.MaxTokens,
			MaxLogLength: ocfg.MaxLogLength,
		}, logger.WithCommonFields(log, provider, ocfg.Model))
		if err != nil {
			return nil, err
		}
		return summarizer, nil
	default:
		return nil, fmt.Errorf("unsupported summary provider: %s", cfg.Provider)
	}
}
