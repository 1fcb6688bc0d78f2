package ranking

// Band is a coarse label for a similarity score, used for display only.
func Band(score float64) string {
	switch {
	case score > 0.8:
		return "strong"
	case score > 0.6:
		return "good"
	case score > 0.4:
		return "fair"
	default:
		return "weak"
	}
}
