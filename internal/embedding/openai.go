package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "text-embedding-3-small"

type embeddingCreator interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

type openAIBackend struct {
	client embeddingCreator
	model  string
}

// NewOpenAILoader returns a Loader that creates an OpenAI client on first use.
func NewOpenAILoader(apiKey, model string) Loader {
	return func(context.Context) (Backend, error) {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			return nil, errors.New("openai api key is required")
		}
		return newOpenAIBackend(openai.NewClient(apiKey), model), nil
	}
}

func newOpenAIBackend(client embeddingCreator, model string) *openAIBackend {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}
	return &openAIBackend{client: client, model: model}
}

func (b *openAIBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := b.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(b.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("openai create embeddings: %w", err)
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("openai returned embedding with index %d for %d texts", d.Index, len(texts))
		}
		out[d.Index] = d.Embedding
	}

	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("openai returned no embedding for text %d", i)
		}
	}
	return out, nil
}

func (b *openAIBackend) Model() string {
	return b.model
}
