package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/candidate-ranker/internal/pipeline"
)

// ManifestEntry is one candidate in a JSON manifest. Either Text or File must
// be set; File is resolved relative to the manifest.
type ManifestEntry struct {
	ID   string `mapstructure:"id"`
	Text string `mapstructure:"text"`
	File string `mapstructure:"file"`
}

// FromManifest reads a JSON array of candidates:
//
//	[{"id": "jane", "text": "..."}, {"id": "john", "file": "john.pdf"}]
func FromManifest(path string) ([]pipeline.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	var entries []ManifestEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &entries,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	candidates := make([]pipeline.Candidate, 0, len(entries))
	for i, entry := range entries {
		candidate, err := entry.resolve(base)
		if err != nil {
			return nil, fmt.Errorf("manifest entry %d: %w", i, err)
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (e ManifestEntry) resolve(base string) (pipeline.Candidate, error) {
	id := strings.TrimSpace(e.ID)
	file := strings.TrimSpace(e.File)

	switch {
	case file != "" && e.Text != "":
		return pipeline.Candidate{}, errors.New("text and file are mutually exclusive")
	case file != "":
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}
		text, err := ReadFile(file)
		if err != nil {
			return pipeline.Candidate{}, err
		}
		if id == "" {
			id = filepath.Base(file)
		}
		return pipeline.Candidate{ID: id, Text: text}, nil
	default:
		if id == "" {
			return pipeline.Candidate{}, errors.New("id is required for inline text")
		}
		return pipeline.Candidate{ID: id, Text: e.Text}, nil
	}
}
