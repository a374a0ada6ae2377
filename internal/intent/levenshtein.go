package intent

// Distance computes the Levenshtein edit distance between a and b over
// runes, keeping two DP rows. Insertions, deletions, and substitutions
// all cost 1.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity maps edit distance onto [0,1]: 1.0 for identical strings
// (two empties included), approaching 0 for entirely different ones.
// Symmetric in its arguments.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	d := Distance(a, b)
	return 1.0 - float64(d)/float64(max(len(ra), len(rb)))
}
