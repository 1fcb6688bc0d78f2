package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/ranking"
)

var errEmptySummary = errors.New("summarizer returned an empty answer")

// summarize asks the summarizer about the first SummaryTopN ranked entries.
// Failures are recorded on the summary and never abort the run.
func (p *Pipeline) summarize(ctx context.Context, log *zap.Logger, jobDescription string, candidates []Candidate, ranked []ranking.Entry) []ai.Summary {
	if p.summarizer == nil || p.config.SummaryTopN <= 0 || len(ranked) == 0 {
		return nil
	}

	n := min(p.config.SummaryTopN, len(ranked))
	summaries := make([]ai.Summary, n)

	var g errgroup.Group
	g.SetLimit(p.config.SummaryConcurrency)

	for i := range n {
		entry := ranked[i]
		g.Go(func() error {
			summary := ai.Summary{Position: entry.Position, CandidateID: entry.ID}

			text, err := p.summarizer.Summarize(ctx, jobDescription, candidates[entry.Index].Text)
			if err == nil && text == "" {
				err = errEmptySummary
			}
			if err != nil {
				log.Warn("summary is not available",
					zap.String(logger.FieldCandidate, entry.ID),
					zap.Int("position", entry.Position),
					zap.Error(err),
				)
				summary.Error = err.Error()
			} else {
				summary.Text = text
			}

			summaries[i] = summary
			return nil
		})
	}
	_ = g.Wait()

	p.logSummaryStep(log, summaries)
	return summaries
}

func (p *Pipeline) logSummaryStep(log *zap.Logger, summaries []ai.Summary) {
	failed := 0
	for _, s := range summaries {
		if !s.Available() {
			failed++
		}
	}
	log.Info("summaries finished",
		zap.Int("requested", len(summaries)),
		zap.Int("failed", failed),
	)
}
