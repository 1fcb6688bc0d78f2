// Package sections splits cleaned resume text into labeled blocks such as
// experience, skills or education.
package sections

import "strings"

const (
	Header         = "header"
	Experience     = "experience"
	Education      = "education"
	Skills         = "skills"
	Projects       = "projects"
	Certifications = "certifications"
	Summary        = "summary"
)

// vocabulary maps a recognized header line (trimmed, lowercased) to its canonical label.
var vocabulary = map[string]string{
	"experience":              Experience,
	"work experience":         Experience,
	"professional experience": Experience,
	"employment history":      Experience,
	"education":               Education,
	"skills":                  Skills,
	"technical skills":        Skills,
	"projects":                Projects,
	"certifications":          Certifications,
	"summary":                 Summary,
}

// Canonical returns the canonical label for a header line and whether the line
// is a recognized header at all.
func Canonical(line string) (string, bool) {
	label, ok := vocabulary[strings.ToLower(strings.TrimSpace(line))]
	return label, ok
}

// Section is a contiguous labeled block. Repeated headers of the same
// canonical label are merged into one Section.
type Section struct {
	Label string
	Lines []string
}

// Text returns the section content joined by newlines and trimmed.
func (s *Section) Text() string {
	return strings.TrimSpace(strings.Join(s.Lines, "\n"))
}

// Map is an ordered label to section mapping. Order follows the first
// appearance of each label in the document.
type Map struct {
	Items []*Section
	index map[string]int
}

func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Len returns the number of distinct sections.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Items)
}

// Get returns the section stored under label.
func (m *Map) Get(label string) (*Section, bool) {
	if m == nil {
		return nil, false
	}
	idx, ok := m.index[label]
	if !ok {
		return nil, false
	}
	return m.Items[idx], true
}

// Labels returns the section labels in document order.
func (m *Map) Labels() []string {
	labels := make([]string, 0, m.Len())
	if m == nil {
		return labels
	}
	for _, s := range m.Items {
		labels = append(labels, s.Label)
	}
	return labels
}

// LineCount returns the total number of content lines across all sections.
func (m *Map) LineCount() int {
	if m == nil {
		return 0
	}
	count := 0
	for _, s := range m.Items {
		count += len(s.Lines)
	}
	return count
}

// Append adds lines to the section under label, creating it when missing.
// Appending to an existing label concatenates instead of overwriting.
func (m *Map) Append(label string, lines ...string) {
	if len(lines) == 0 {
		return
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if idx, ok := m.index[label]; ok {
		m.Items[idx].Lines = append(m.Items[idx].Lines, lines...)
		return
	}
	m.index[label] = len(m.Items)
	m.Items = append(m.Items, &Section{Label: label, Lines: append([]string(nil), lines...)})
}

// Segment splits cleaned text into sections. Content before the first
// recognized header is stored under Header. Header lines themselves become
// labels and are not part of any section body.
func Segment(text string) *Map {
	m := NewMap()
	if text == "" {
		return m
	}

	current := Header
	var buffer []string

	for _, line := range strings.Split(text, "\n") {
		label, ok := Canonical(line)
		if !ok {
			buffer = append(buffer, line)
			continue
		}

		m.Append(current, buffer...)
		current = label
		buffer = nil
	}
	m.Append(current, buffer...)

	return m
}
