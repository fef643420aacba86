package match

// Levenshtein returns the byte-wise edit distance between a and b.
func Levenshtein(a, b string) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			sub := diag
			if a[i-1] != b[j-1] {
				sub++
			}

			diag = row[j]
			row[j] = min(row[j]+1, row[j-1]+1, sub)
		}
	}

	return row[len(b)]
}

// Similarity returns 1 - distance/max(len) on normalized identifiers.
// 1.0 means the identifiers normalize to the same string.
func Similarity(a, b string) float64 {
	a, b = NormalizeIdent(a), NormalizeIdent(b)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}
