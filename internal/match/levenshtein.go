package match

import "unicode/utf8"

// Levenshtein returns the edit distance between a and b: the number of
// rune insertions, deletions and substitutions turning one into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// row[j] is the distance between the consumed prefix of ra and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		diag := row[0]
		row[0] = i + 1

		for j, cb := range rb {
			sub := diag
			if ca != cb {
				sub++
			}

			diag = row[j+1]
			row[j+1] = min(row[j+1]+1, row[j]+1, sub)
		}
	}

	return row[len(rb)]
}

// LevenshteinNormalized maps the edit distance onto a similarity in [0, 1],
// where 1 means equal: 1 - distance / length of the longer string.
func LevenshteinNormalized(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}
