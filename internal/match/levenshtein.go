package match

// Levenshtein returns the number of single byte insertions, deletions and
// substitutions turning a into b.
func Levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	if b == "" {
		return len(a)
	}

	// one row of the distance matrix, indexed by position in the shorter b
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(b); j++ {
			up := row[j]

			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			row[j] = min(up+1, row[j-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(b)]
}

// Similarity scores a and b between 0 (nothing in common) and 1 (equal
// after NormalizeName).
func Similarity(a, b string) float64 {
	a, b = NormalizeName(a), NormalizeName(b)
	if a == "" && b == "" {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}
