package scoring

import "testing"

func TestDefaultWeights(t *testing.T) {
	t.Parallel()

	weights := DefaultWeights()

	tests := map[string]float64{
		"experience":     2.0,
		"projects":       1.5,
		"skills":         1.0,
		"education":      1.0,
		"header":         DefaultWeight,
		"certifications": DefaultWeight,
		"unknown":        DefaultWeight,
	}

	for label, expect := range tests {
		if got := weights.Weight(label); got != expect {
			t.Fatalf("weight for %q: expected %v, got %v", label, expect, got)
		}
	}
}

func TestNewWeightTableOverrides(t *testing.T) {
	t.Parallel()

	weights := NewWeightTable(map[string]float64{
		" Skills ": 3,
		"header":   0,
		"":         5,
	})

	if weights.Weight("skills") != 3 {
		t.Fatalf("expected skills override, got %v", weights.Weight("skills"))
	}
	if weights.Included("header") {
		t.Fatal("expected header to be excluded")
	}
	if weights.Weight("experience") != 2 {
		t.Fatalf("expected default experience weight to stay, got %v", weights.Weight("experience"))
	}
	if _, ok := weights.Entries()[""]; ok {
		t.Fatal("empty label must be ignored")
	}

	if DefaultWeights().Weight("skills") != 1 {
		t.Fatal("overrides must not leak into the defaults")
	}
}

func TestZeroWeightTable(t *testing.T) {
	var weights WeightTable
	if weights.Weight("experience") != DefaultWeight || !weights.Included("experience") {
		t.Fatal("zero table must fall back to the default weight")
	}
}
