package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const defaultHashingDimension = 1024

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "for": true, "with": true,
	"of": true, "in": true, "on": true, "to": true, "at": true, "by": true,
	"is": true, "are": true, "be": true, "as": true, "or": true, "we": true,
	"you": true, "our": true, "your": true, "this": true, "that": true,
	"from": true, "into": true, "will": true, "has": true, "have": true,
}

// HashingBackend is an offline bag-of-words embedder. Every token is hashed
// into one of Dimension buckets with a hash-derived sign.
type HashingBackend struct {
	dim int
}

// NewHashingLoader returns a Loader for the offline hashing backend.
func NewHashingLoader(dimension int) Loader {
	return func(context.Context) (Backend, error) {
		return NewHashingBackend(dimension), nil
	}
}

func NewHashingBackend(dimension int) *HashingBackend {
	if dimension <= 0 {
		dimension = defaultHashingDimension
	}
	return &HashingBackend{dim: dimension}
}

func (b *HashingBackend) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = b.embed(text)
	}
	return out, nil
}

func (b *HashingBackend) Model() string {
	return ProviderHashing
}

func (b *HashingBackend) Dimension() int {
	return b.dim
}

func (b *HashingBackend) embed(text string) []float32 {
	vec := make([]float32, b.dim)
	for _, token := range tokenize(text) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()

		idx := int(sum % uint64(b.dim))
		if sum>>63 == 1 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	return vec
}

// tokenize lowercases text and splits it on anything that is not a letter,
// digit, '+' or '#', dropping stop words and single characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
