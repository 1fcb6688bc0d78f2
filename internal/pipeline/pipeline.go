// Package pipeline turns a job description and a list of raw resumes into a
// ranked list of candidates.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/embedding"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/sections"
	"github.com/spigell/candidate-ranker/internal/textclean"
)

const (
	DefaultTopK               = 10
	DefaultSummaryTopN        = 3
	DefaultSummaryConcurrency = 3
)

var (
	// ErrInputEmpty is returned before any processing when the job
	// description is blank or there are no candidates.
	ErrInputEmpty = errors.New("input is empty")
	// ErrEmbedding wraps every embedder failure, including model load errors.
	ErrEmbedding = errors.New("embedding failed")
)

// Candidate is a raw resume as handed over by ingestion.
type Candidate struct {
	ID   string `json:"id" mapstructure:"id"`
	Text string `json:"text" mapstructure:"text"`
}

// Config controls a single ranking run.
type Config struct {
	// TopK is used as given; k <= 0 ranks nobody. Callers apply DefaultTopK
	// when resolving their configuration.
	TopK    int
	Mode    scoring.Mode
	Weights scoring.WeightTable

	// SummaryTopN is the number of ranked candidates that get a summary.
	SummaryTopN        int
	SummaryConcurrency int
}

// Deps aggregates collaborators of the pipeline. Summarizer is optional.
type Deps struct {
	Embedder   embedding.Embedder
	Summarizer ai.Summarizer
	Logger     *zap.Logger
}

// Pipeline runs clean, segment, embed, score and rank for every candidate.
type Pipeline struct {
	config     Config
	embedder   embedding.Embedder
	scorer     *scoring.Scorer
	summarizer ai.Summarizer
	logger     *zap.Logger
}

func New(cfg Config, deps Deps) (*Pipeline, error) {
	if deps.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if cfg.SummaryConcurrency <= 0 {
		cfg.SummaryConcurrency = DefaultSummaryConcurrency
	}
	if cfg.Weights.Entries() == nil {
		cfg.Weights = scoring.DefaultWeights()
	}

	return &Pipeline{
		config:     cfg,
		embedder:   deps.Embedder,
		scorer:     scoring.New(deps.Embedder, cfg.Mode, cfg.Weights),
		summarizer: deps.Summarizer,
		logger:     logger.WithFields(deps.Logger),
	}, nil
}

// Run ranks candidates against the job description. Candidates without any
// scorable text are reported in Result.Skipped. The returned error, if any,
// wraps ErrInputEmpty or ErrEmbedding.
func (p *Pipeline) Run(ctx context.Context, jobDescription string, candidates []Candidate) (*Result, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is blank", ErrInputEmpty)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInputEmpty)
	}

	result := &Result{RunID: uuid.NewString(), Mode: p.scorer.Mode()}
	log := logger.WithRun(p.logger, result.RunID)

	job := textclean.Clean(jobDescription)
	if job == "" {
		return nil, fmt.Errorf("%w: job description has no content after cleaning", ErrInputEmpty)
	}

	log.Info("ranking candidates",
		zap.Int("candidates", len(candidates)),
		zap.String("mode", string(result.Mode)),
		zap.Int("top_k", p.config.TopK),
	)

	jobVectors, err := p.embedder.Embed(ctx, []string{job})
	if err != nil {
		return nil, fmt.Errorf("%w: job description: %w", ErrEmbedding, err)
	}
	jobVector := jobVectors[0]

	scores := make([]ranking.CandidateScore, 0, len(candidates))
	for i, candidate := range candidates {
		clean := textclean.Clean(candidate.Text)
		doc := scoring.Document{Text: clean, Sections: sections.Segment(clean)}

		scored, err := p.scorer.Score(ctx, jobVector, doc)
		if errors.Is(err, scoring.ErrNothingToScore) {
			log.Warn("skipping candidate",
				zap.String(logger.FieldCandidate, candidate.ID),
				zap.String("reason", "no scorable text after cleaning and segmentation"),
			)
			result.Skipped = append(result.Skipped, candidate.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %q: %w", ErrEmbedding, candidate.ID, err)
		}

		log.Debug("candidate scored",
			zap.String(logger.FieldCandidate, candidate.ID),
			zap.Float64("score", scored.Score),
			zap.Strings("sections", doc.Sections.Labels()),
			zap.Any("section_scores", scored.Sections),
		)

		scores = append(scores, ranking.CandidateScore{ID: candidate.ID, Score: scored.Score, Index: i})
	}
	result.addStep(log, "score", len(candidates), len(scores))

	result.Ranked = ranking.Rank(scores, p.config.TopK)
	result.addStep(log, "rank", len(scores), len(result.Ranked))

	result.Summaries = p.summarize(ctx, log, jobDescription, candidates, result.Ranked)

	log.Info("ranking finished",
		zap.Int("ranked", len(result.Ranked)),
		zap.Int("skipped", result.SkippedCount()),
	)

	return result, nil
}
