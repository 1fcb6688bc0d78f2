package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFromPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "Bob\nGo engineer")
	writeFile(t, dir, "a.txt", "Alice\nKubernetes")
	writeFile(t, dir, "notes.md", "ignored")
	writeFile(t, dir, "nested/c.TXT", "Carol")
	explicit := writeFile(t, t.TempDir(), "explicit.txt", "Dave")

	candidates, err := FromPaths(context.Background(), []string{explicit, dir, " "}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"explicit.txt", "a.txt", "b.txt", "c.TXT"}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %+v", len(want), candidates)
	}
	for i, id := range want {
		if candidates[i].ID != id {
			t.Fatalf("candidate %d: expected %s, got %s", i, id, candidates[i].ID)
		}
	}
	if candidates[1].Text != "Alice\nKubernetes" {
		t.Fatalf("unexpected text: %q", candidates[1].Text)
	}
}

func TestFromPathsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unsupported := writeFile(t, dir, "resume.docx", "binary")
	brokenPDF := writeFile(t, dir, "broken.pdf", "definitely not a pdf")

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{name: "missing path", paths: []string{filepath.Join(dir, "missing.txt")}, want: "resume path"},
		{name: "unsupported explicit file", paths: []string{unsupported}, want: "unsupported file type"},
		{name: "broken pdf", paths: []string{brokenPDF}, want: "opening pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromPaths(context.Background(), tc.paths, nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFromPathsCancelled(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.txt", "text")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FromPaths(ctx, []string{path}, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
