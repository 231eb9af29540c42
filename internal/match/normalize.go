package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an option name for fuzzy matching: lower case, with
// `_`, `-` and spaces removed. "refs_clone", "refsClone" and "refs-clone"
// all become "refsclone".
func NormalizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
