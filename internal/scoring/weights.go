package scoring

import (
	"maps"
	"strings"

	"github.com/spigell/candidate-ranker/internal/sections"
)

// DefaultWeight applies to every label the table has no explicit entry for.
const DefaultWeight = 1.0

var defaultWeights = map[string]float64{
	sections.Experience: 2.0,
	sections.Projects:   1.5,
	sections.Skills:     1.0,
	sections.Education:  1.0,
}

// WeightTable maps canonical section labels to their weight in the final
// score. Labels without an entry weigh DefaultWeight; a weight <= 0 removes
// the section from scoring.
type WeightTable struct {
	weights map[string]float64
}

// DefaultWeights returns experience=2.0, projects=1.5, skills=1.0,
// education=1.0 with every other label at DefaultWeight.
func DefaultWeights() WeightTable {
	return WeightTable{weights: maps.Clone(defaultWeights)}
}

// NewWeightTable returns the default table with overrides applied on top.
// Override keys are matched case-insensitively.
func NewWeightTable(overrides map[string]float64) WeightTable {
	table := DefaultWeights()
	for label, weight := range overrides {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		table.weights[label] = weight
	}
	return table
}

// Weight returns the weight for label, falling back to DefaultWeight.
func (w WeightTable) Weight(label string) float64 {
	if weight, ok := w.weights[label]; ok {
		return weight
	}
	return DefaultWeight
}

// Included reports whether sections with label take part in scoring.
func (w WeightTable) Included(label string) bool {
	return w.Weight(label) > 0
}

// Entries returns a copy of the explicit weights.
func (w WeightTable) Entries() map[string]float64 {
	return maps.Clone(w.weights)
}
