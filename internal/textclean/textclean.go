// Package textclean removes contact details and pagination noise from
// extracted resume and job description text.
package textclean

import (
	"regexp"
	"strings"
)

var (
	urlPattern    = regexp.MustCompile(`https?://\S+`)
	emailPattern  = regexp.MustCompile(`\S+@\S+`)
	phonePattern  = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	footerPattern = regexp.MustCompile(`(?i)page \d+ of \d+`)
	blankLines    = regexp.MustCompile(`\n{2,}`)

	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Clean strips noise from raw text. The removal order is fixed: URLs, emails,
// phone numbers, page footers, then runs of blank lines are squashed into one.
func Clean(raw string) string {
	text := lineEndings.Replace(raw)

	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = phonePattern.ReplaceAllString(text, "")
	text = footerPattern.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
