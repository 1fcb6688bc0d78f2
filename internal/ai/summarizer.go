// Package ai holds the provider-independent parts of the optional fit summaries.
package ai

import (
	"context"
	_ "embed"
	"strings"
)

// SystemInstruction is the role given to every summary model.
const SystemInstruction = "You are an expert recruiter."

// Summarizer explains in one sentence why a candidate fits a job description.
type Summarizer interface {
	Summarize(ctx context.Context, jobDescription, resumeText string) (string, error)
}

// Summary is the outcome of summarizing one ranked candidate. Error is set
// instead of Text when the summary could not be produced.
type Summary struct {
	Position    int    `json:"position"`
	CandidateID string `json:"candidate_id"`
	Text        string `json:"text,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Available reports whether the summary has text to show.
func (s Summary) Available() bool {
	return s.Error == "" && strings.TrimSpace(s.Text) != ""
}

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the fit prompt for a job description and a full resume.
func BuildPrompt(jobDescription, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n\n{{JOB_DESCRIPTION}}\n\nResume:\n\n{{RESUME}}\n\nIn one concise sentence, explain why this candidate is a great fit."
	}
	prompt := strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", strings.TrimSpace(resumeText))
	return prompt
}

// CleanResponse turns a model answer into a single plain line: code fences,
// wrapping quotes and line breaks are removed.
func CleanResponse(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Join(strings.Fields(raw), " ")
	raw = strings.Trim(raw, "\"'`")
	return strings.TrimSpace(raw)
}
