// Package ranking orders scored candidates and cuts the top-k.
package ranking

import "sort"

// CandidateScore is the score of a single candidate. Index is the position of
// the candidate in the ingestion order and breaks ties.
type CandidateScore struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Index int     `json:"-"`
}

// Entry is a ranked candidate with its 1-based position.
type Entry struct {
	Position int `json:"position"`
	CandidateScore
}

// Rank sorts scores descending, keeping input order for equal scores, and
// returns at most k entries. k <= 0 or no scores yields an empty slice.
func Rank(scores []CandidateScore, k int) []Entry {
	if k <= 0 || len(scores) == 0 {
		return []Entry{}
	}

	sorted := make([]CandidateScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	n := min(k, len(sorted))
	entries := make([]Entry, n)
	for i := range n {
		entries[i] = Entry{Position: i + 1, CandidateScore: sorted[i]}
	}
	return entries
}
