// Package ingest turns files, pasted bundles and manifests into candidates
// for the ranking pipeline. File-type handling lives here and nowhere else.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/candidate-ranker/internal/pipeline"
)

const readConcurrency = 8

var supportedExtensions = []string{".txt", ".pdf"}

// FromPaths reads every supported file named in paths. Directories are
// walked recursively and their files are taken in lexical order. The
// candidate ID is the file base name.
func FromPaths(ctx context.Context, paths []string, logger *zap.Logger) ([]pipeline.Candidate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := expand(paths, logger)
	if err != nil {
		return nil, err
	}

	candidates := make([]pipeline.Candidate, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			text, err := ReadFile(file)
			if err != nil {
				return err
			}

			candidates[i] = pipeline.Candidate{ID: filepath.Base(file), Text: text}
			logger.Debug("candidate loaded",
				zap.String("path", file),
				zap.Int("runes", len([]rune(text))),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// ReadFile returns the text of a .txt or .pdf file.
func ReadFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q: %s", filepath.Ext(path), path)
	}
}

func expand(paths []string, logger *zap.Logger) ([]string, error) {
	var files []string
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("resume path: %w", err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !supported(p) {
				logger.Debug("ignoring unsupported file", zap.String("path", p))
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}
	return files, nil
}

func supported(path string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(path)))
}
