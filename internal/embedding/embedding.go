// Package embedding turns text into L2-normalized vectors using a lazily loaded
// model backend shared by the whole process.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
)

const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"

	defaultBatchSize = 32
)

// Vector is a unit-length embedding.
type Vector []float32

// Embedder converts texts into vectors, one per input and in the same order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([]Vector, error)
}

// Backend is the raw model behind a Handle. Its output does not need to be
// normalized.
type Backend interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

// ErrZeroVector means a backend produced a vector without direction, which
// cannot be normalized. The hashing backend does this for text made only of
// stop words or single characters.
var ErrZeroVector = errors.New("zero-norm embedding")

// ZeroVectorError lists the inputs of one Embed call that produced zero-norm
// vectors.
type ZeroVectorError struct {
	Indexes []int
}

func (e *ZeroVectorError) Error() string {
	return fmt.Sprintf("%s for texts %v", ErrZeroVector, e.Indexes)
}

func (e *ZeroVectorError) Is(target error) bool {
	return target == ErrZeroVector
}

// IsZero reports whether v has no non-zero component.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Normalize returns a unit-length copy of v. A zero vector is returned
// unchanged; Service rejects those with ErrZeroVector.
func Normalize(v []float32) Vector {
	out := make(Vector, len(v))
	copy(out, v)

	var sum float64
	for _, x := range out {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return out
	}

	inv := 1.0 / math.Sqrt(sum)
	for i := range out {
		out[i] = float32(float64(out[i]) * inv)
	}
	return out
}
