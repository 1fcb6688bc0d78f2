package ingest

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spigell/candidate-ranker/internal/pipeline"
)

var bundleSeparator = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)

// ParseBundle splits pasted resumes separated by lines consisting of "---".
// The first line of every part is the candidate name and the rest is the
// resume. Parts are trimmed first, so leading blank lines never become the
// name. Blank parts are dropped; a part without a usable name line is named
// "Resume N" after its position among the kept parts.
func ParseBundle(text string) []pipeline.Candidate {
	parts := bundleSeparator.Split(text, -1)
	candidates := make([]pipeline.Candidate, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, body, _ := strings.Cut(part, "\n")
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Resume %d", len(candidates)+1)
		}

		candidates = append(candidates, pipeline.Candidate{ID: name, Text: strings.TrimSpace(body)})
	}

	return candidates
}

// FromBundleFile reads a pasted bundle from disk.
func FromBundleFile(path string) ([]pipeline.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	return ParseBundle(string(data)), nil
}
