// Package scoring computes similarity scores between a job description vector
// and a candidate resume, either over the whole document or per section.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/candidate-ranker/internal/embedding"
	"github.com/spigell/candidate-ranker/internal/sections"
)

type Mode string

const (
	ModeDocument Mode = "document"
	ModeSections Mode = "sections"
)

// ErrNothingToScore is returned when a candidate has no text that can be
// compared against the job description.
var ErrNothingToScore = errors.New("nothing to score")

// ParseMode converts a configuration value into a Mode. Empty means ModeSections.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSections:
		return ModeSections, nil
	case ModeDocument:
		return ModeDocument, nil
	default:
		return "", fmt.Errorf("unsupported scoring mode: %s", s)
	}
}

// Document is a cleaned resume together with its segmentation.
type Document struct {
	Text     string
	Sections *sections.Map
}

// SectionScore is the similarity of one section to the job description.
type SectionScore struct {
	Label      string
	Weight     float64
	Similarity float64
}

// Result is the score of one candidate.
type Result struct {
	Score    float64
	Sections []SectionScore
}

type Scorer struct {
	embedder embedding.Embedder
	mode     Mode
	weights  WeightTable
}

func New(embedder embedding.Embedder, mode Mode, weights WeightTable) *Scorer {
	if mode == "" {
		mode = ModeSections
	}
	return &Scorer{embedder: embedder, mode: mode, weights: weights}
}

func (s *Scorer) Mode() Mode {
	return s.mode
}

// Score compares the document with the job vector using the configured mode.
// Embedding errors are returned as is; ErrNothingToScore means the candidate
// should be skipped.
func (s *Scorer) Score(ctx context.Context, job embedding.Vector, doc Document) (*Result, error) {
	if s.mode == ModeDocument {
		return s.scoreDocument(ctx, job, doc.Text)
	}
	return s.scoreSections(ctx, job, doc.Sections)
}

func (s *Scorer) scoreDocument(ctx context.Context, job embedding.Vector, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNothingToScore
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if errors.Is(err, embedding.ErrZeroVector) {
		return nil, ErrNothingToScore
	}
	if err != nil {
		return nil, err
	}
	if embedding.IsZero(vectors[0]) {
		return nil, ErrNothingToScore
	}

	sim, err := Cosine(job, vectors[0])
	if err != nil {
		return nil, err
	}
	return &Result{Score: sim}, nil
}

func (s *Scorer) scoreSections(ctx context.Context, job embedding.Vector, m *sections.Map) (*Result, error) {
	var (
		texts  []string
		scored []SectionScore
	)

	if m != nil {
		for _, section := range m.Items {
			text := section.Text()
			if text == "" || !s.weights.Included(section.Label) {
				continue
			}
			texts = append(texts, text)
			scored = append(scored, SectionScore{Label: section.Label, Weight: s.weights.Weight(section.Label)})
		}
	}

	vectors, scored, err := s.embedSections(ctx, texts, scored)
	if err != nil {
		return nil, err
	}

	parts := make([]SectionScore, 0, len(scored))
	for i := range scored {
		if embedding.IsZero(vectors[i]) {
			continue
		}
		sim, err := Cosine(job, vectors[i])
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", scored[i].Label, err)
		}
		scored[i].Similarity = sim
		parts = append(parts, scored[i])
	}

	if len(parts) == 0 {
		return nil, ErrNothingToScore
	}
	return &Result{Score: WeightedMean(parts), Sections: parts}, nil
}

// embedSections embeds the section texts in one batch. Sections whose text
// embeds to a zero-norm vector carry no signal; they are dropped and the
// remaining sections are embedded again.
func (s *Scorer) embedSections(ctx context.Context, texts []string, scored []SectionScore) ([]embedding.Vector, []SectionScore, error) {
	for {
		if len(texts) == 0 {
			return nil, nil, ErrNothingToScore
		}

		vectors, err := s.embedder.Embed(ctx, texts)

		var zeroErr *embedding.ZeroVectorError
		if !errors.As(err, &zeroErr) || len(zeroErr.Indexes) == 0 {
			return vectors, scored, err
		}

		drop := make(map[int]bool, len(zeroErr.Indexes))
		for _, i := range zeroErr.Indexes {
			drop[i] = true
		}

		var (
			keptTexts  []string
			keptScored []SectionScore
		)
		for i := range texts {
			if drop[i] {
				continue
			}
			keptTexts = append(keptTexts, texts[i])
			keptScored = append(keptScored, scored[i])
		}
		texts, scored = keptTexts, keptScored
	}
}

// WeightedMean returns sum(similarity*weight) / sum(weight) over parts with a
// positive weight, or 0 when there are none.
func WeightedMean(parts []SectionScore) float64 {
	var sum, total float64
	for _, p := range parts {
		if p.Weight <= 0 {
			continue
		}
		sum += p.Similarity * p.Weight
		total += p.Weight
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// Cosine returns the cosine similarity of two unit vectors, clamped to [-1, 1].
func Cosine(a, b embedding.Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d and %d", len(a), len(b))
	}

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	return max(-1, min(1, dot)), nil
}
