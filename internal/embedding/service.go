package embedding

import (
	"context"
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Service is the Embedder used by the ranking pipeline. It batches requests
// to the backend and normalizes every returned vector.
type Service struct {
	handle    *Handle
	batchSize int
	logger    *zap.Logger

	dimension atomic.Int64
}

func NewService(handle *Handle, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		handle:    handle,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Embed returns one normalized vector per text. Batches are sent sequentially
// so the output order always matches the input order.
func (s *Service) Embed(ctx context.Context, texts []string) ([]Vector, error) {
	if len(texts) == 0 {
		return []Vector{}, nil
	}

	backend, err := s.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	vectors := make([]Vector, 0, len(texts))
	var zero []int
	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))
		batch := texts[start:end]

		s.logger.Debug("embedding batch",
			zap.String("model", backend.Model()),
			zap.Int("batch_start", start),
			zap.Int("batch_size", len(batch)),
			zap.Int("batch_runes", runeCount(batch)),
		)

		raw, err := backend.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(raw) != len(batch) {
			return nil, fmt.Errorf("embed batch %d-%d: expected %d vectors, got %d", start, end, len(batch), len(raw))
		}

		for i, v := range raw {
			if err := s.checkDimension(len(v)); err != nil {
				return nil, fmt.Errorf("embed text %d: %w", start+i, err)
			}
			if IsZero(v) {
				zero = append(zero, start+i)
			}
			vectors = append(vectors, Normalize(v))
		}
	}

	if len(zero) > 0 {
		return nil, &ZeroVectorError{Indexes: zero}
	}
	return vectors, nil
}

// Dimension returns the vector dimension observed so far, or 0 before the
// first successful call.
func (s *Service) Dimension() int {
	return int(s.dimension.Load())
}

// Model returns the identifier of the underlying model.
func (s *Service) Model() string {
	return s.handle.Model()
}

func (s *Service) checkDimension(d int) error {
	if d == 0 {
		return fmt.Errorf("backend returned an empty vector")
	}
	if s.dimension.CompareAndSwap(0, int64(d)) {
		return nil
	}
	if current := s.dimension.Load(); current != int64(d) {
		return fmt.Errorf("vector dimension changed from %d to %d", current, d)
	}
	return nil
}

func runeCount(texts []string) int {
	total := 0
	for _, t := range texts {
		total += utf8.RuneCountInString(t)
	}
	return total
}
