// Package match provides name normalization, Levenshtein distance calculation
// and candidate ranking for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known names against an unknown one
//   - Suggest: returns the closest known name, if it is close enough
package match
