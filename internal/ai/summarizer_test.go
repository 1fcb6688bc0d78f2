package ai

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("  Backend engineer with Go  ", "Jane Doe\nBuilt Go services\n")

	if !strings.Contains(prompt, "Here is a job description:\n\nBackend engineer with Go\n") {
		t.Fatalf("job description not rendered: %s", prompt)
	}
	if !strings.Contains(prompt, "Jane Doe\nBuilt Go services\n") {
		t.Fatalf("resume not rendered in full: %s", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("unrendered placeholder left: %s", prompt)
	}
}

func TestCleanResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "plain", input: "  Strong Go background.  ", expect: "Strong Go background."},
		{name: "quoted", input: `"Strong Go background."`, expect: "Strong Go background."},
		{name: "multi-line", input: "Strong Go\nbackground\n\nand Python.", expect: "Strong Go background and Python."},
		{name: "code fence", input: "```text\nStrong Go background.\n```", expect: "Strong Go background."},
		{name: "empty", input: "   ", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanResponse(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestSummaryAvailable(t *testing.T) {
	if !(Summary{Text: "fits"}).Available() {
		t.Fatal("expected summary with text to be available")
	}
	if (Summary{Text: "fits", Error: "boom"}).Available() {
		t.Fatal("expected summary with error to be unavailable")
	}
	if (Summary{}).Available() {
		t.Fatal("expected empty summary to be unavailable")
	}
}
