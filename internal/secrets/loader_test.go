package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	secret, err := Load(Source{Name: "gemini api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "file-secret" {
		t.Fatalf("expected file to take precedence, got %q", secret)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	_, err := Load(Source{Name: "openai api key", File: path})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromValueAndEnv(t *testing.T) {
	t.Setenv("RANKER_TEST_KEY", " env-secret ")

	secret, err := Load(Source{Value: " inline ", Env: "RANKER_TEST_KEY"})
	if err != nil || secret != "inline" {
		t.Fatalf("expected inline value, got %q, %v", secret, err)
	}

	secret, err = Load(Source{Env: "RANKER_TEST_KEY"})
	if err != nil || secret != "env-secret" {
		t.Fatalf("expected env value, got %q, %v", secret, err)
	}
}

func TestLoadNotConfigured(t *testing.T) {
	t.Setenv("RANKER_TEST_EMPTY", "")

	_, err := Load(Source{Name: "gemini api key", Env: "RANKER_TEST_EMPTY"})
	if err == nil || !strings.Contains(err.Error(), "set RANKER_TEST_EMPTY") {
		t.Fatalf("expected hint about env variable, got %v", err)
	}

	_, err = Load(Source{})
	if err == nil || !strings.Contains(err.Error(), "secret is not configured") {
		t.Fatalf("expected default name in error, got %v", err)
	}
}
