package pipeline

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/ai"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

// Step describes how many candidates entered and left a pipeline stage.
type Step struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
}

// Result is everything a run hands to the presentation layer.
type Result struct {
	RunID     string          `json:"run_id"`
	Mode      scoring.Mode    `json:"mode"`
	Ranked    []ranking.Entry `json:"ranked"`
	Skipped   []string        `json:"skipped,omitempty"`
	Summaries []ai.Summary    `json:"summaries,omitempty"`
	Steps     []Step          `json:"steps"`
}

func (r *Result) SkippedCount() int {
	return len(r.Skipped)
}

// SummaryFor returns the summary of the candidate ranked at position.
func (r *Result) SummaryFor(position int) (ai.Summary, bool) {
	for _, s := range r.Summaries {
		if s.Position == position {
			return s, true
		}
	}
	return ai.Summary{}, false
}

// DumpToTmpFile writes the result as indented JSON to a new temporary file and
// returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (r *Result) addStep(log *zap.Logger, name string, initial, left int) {
	step := Step{Name: name, Initial: initial, Dropped: initial - left, Left: left}
	r.Steps = append(r.Steps, step)

	log.Info("pipeline step",
		zap.String("name", step.Name),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)
}
