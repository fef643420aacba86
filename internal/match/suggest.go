package match

import "sort"

// MinSuggestScore is the similarity a candidate needs to be suggested.
const MinSuggestScore = 0.6

// Suggest returns the candidate most similar to name, if any scores at least
// MinSuggestScore. Ties go to the alphabetically first candidate.
func Suggest(name string, candidates []string) (string, bool) {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestScore := "", 0.0
	for _, c := range sorted {
		if score := Similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	return best, bestScore >= MinSuggestScore
}
