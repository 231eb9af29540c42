package match

import (
	"sort"
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name string

	// Distance is the edit distance between the normalized names.
	Distance int
	// Score is the normalized Levenshtein similarity (0-1).
	Score float64

	// Metadata for debugging/explanation
	NormalizedName  string
	NormalizedInput string
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against input.
// Returns candidates sorted by score (descending).
func RankCandidates(input string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	inputNorm := NormalizeIdent(input)

	for _, name := range known {
		nameNorm := NormalizeIdent(name)

		candidates = append(candidates, Candidate{
			Name:            name,
			Distance:        Levenshtein(inputNorm, nameNorm),
			Score:           LevenshteinNormalized(inputNorm, nameNorm),
			NormalizedName:  nameNorm,
			NormalizedInput: inputNorm,
		})
	}

	// Sort by score (descending), then by name for determinism
	sort.Sort(candidates)

	return candidates
}

// Suggest returns the known name closest to input. It reports false when
// nothing is within half the length of the longer normalized name.
func Suggest(input string, known []string) (string, bool) {
	best := RankCandidates(input, known).Best()
	if best == nil || !best.Close() {
		return "", false
	}

	return best.Name, true
}

// Close reports whether the candidate is similar enough to suggest.
func (c Candidate) Close() bool {
	limit := max(len(c.NormalizedName), len(c.NormalizedInput)) / 2

	return c.Distance <= limit
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

