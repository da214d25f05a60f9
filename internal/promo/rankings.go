package promo

// AveragePoints is points per approved post, 0 when nothing is approved yet
func AveragePoints(points, approvedPosts int) float64 {
	if approvedPosts <= 0 {
		return 0
	}
	return float64(points) / float64(approvedPosts)
}

// PodiumIndexes maps the top standings (already sorted best-first) to
// display order: second place left, first center, third right.
func PodiumIndexes(n int) []int {
	switch {
	case n >= 3:
		return []int{1, 0, 2}
	case n == 2:
		return []int{1, 0}
	case n == 1:
		return []int{0}
	default:
		return nil
	}
}
