package sections

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"Backend engineer",
		"Work Experience",
		"Acme Corp, 2019-2024",
		"Built distributed systems",
		"  SKILLS  ",
		"Go, Python",
		"Education",
		"BSc Computer Science",
	}, "\n")

	m := Segment(text)

	expectedLabels := []string{Header, Experience, Skills, Education}
	if got := m.Labels(); strings.Join(got, ",") != strings.Join(expectedLabels, ",") {
		t.Fatalf("unexpected labels: %v", got)
	}

	experience, ok := m.Get(Experience)
	if !ok {
		t.Fatalf("expected experience section")
	}
	if experience.Text() != "Acme Corp, 2019-2024\nBuilt distributed systems" {
		t.Fatalf("unexpected experience text: %q", experience.Text())
	}

	header, _ := m.Get(Header)
	if header.Text() != "Jane Doe\nBackend engineer" {
		t.Fatalf("unexpected header text: %q", header.Text())
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	m := Segment("")
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d sections", m.Len())
	}
}

func TestSegmentFoldsExperienceSynonyms(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"Experience", "work experience", "Professional Experience", "EMPLOYMENT HISTORY"} {
		m := Segment(header + "\nBuilt things")
		if _, ok := m.Get(Experience); !ok {
			t.Fatalf("header %q was not folded into experience: %v", header, m.Labels())
		}
		if m.Len() != 1 {
			t.Fatalf("expected a single section for %q, got %v", header, m.Labels())
		}
	}
}

func TestSegmentConcatenatesRepeatedHeaders(t *testing.T) {
	text := "Skills\nGo\nProjects\nRanker\nskills\nPython"

	m := Segment(text)

	skills, ok := m.Get(Skills)
	if !ok {
		t.Fatalf("expected skills section")
	}
	if skills.Text() != "Go\nPython" {
		t.Fatalf("expected concatenated skills, got %q", skills.Text())
	}

	if got := m.Labels(); len(got) != 2 || got[0] != Skills || got[1] != Projects {
		t.Fatalf("expected first-seen order, got %v", got)
	}
}

func TestSegmentIsTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"no headers at all\njust lines\n\nand a blank one",
		"Experience\nA\n\nB\nSkills\nC\nExperience\nD",
		"Education",
		"Skills\n",
		"header text\nProjects\n\n\nCertifications\nAWS",
	}

	for _, input := range inputs {
		lines := strings.Split(input, "\n")
		headers := 0
		for _, line := range lines {
			if _, ok := Canonical(line); ok {
				headers++
			}
		}

		m := Segment(input)
		if got := m.LineCount() + headers; got != len(lines) {
			t.Fatalf("segment lost or duplicated lines for %q: got %d, want %d", input, got, len(lines))
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		label  string
		header bool
	}{
		{line: "  Technical Skills ", label: Skills, header: true},
		{line: "certifications", label: Certifications, header: true},
		{line: "Experience:", header: false},
		{line: "Built experience platform", header: false},
	}

	for _, tt := range tests {
		label, ok := Canonical(tt.line)
		if ok != tt.header || label != tt.label {
			t.Fatalf("Canonical(%q) = %q, %v; want %q, %v", tt.line, label, ok, tt.label, tt.header)
		}
	}
}
