package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "text-embedding-004"
	geminiTaskType     = "SEMANTIC_SIMILARITY"
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type geminiBackend struct {
	models contentEmbedder
	model  string
}

// NewGeminiLoader returns a Loader that creates a Gemini API client on first use.
func NewGeminiLoader(apiKey, model string) Loader {
	return func(ctx context.Context) (Backend, error) {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			return nil, errors.New("gemini api key is required")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}

		return newGeminiBackend(client.Models, model), nil
	}
}

func newGeminiBackend(models contentEmbedder, model string) *geminiBackend {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &geminiBackend{models: models, model: model}
}

func (b *geminiBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	resp, err := b.models.EmbedContent(ctx, b.model, contents, &genai.EmbedContentConfig{
		TaskType: geminiTaskType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", embeddingCount(resp), len(texts))
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("gemini returned empty embedding at %d", i)
		}
		out[i] = e.Values
	}
	return out, nil
}

func (b *geminiBackend) Model() string {
	return b.model
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}
