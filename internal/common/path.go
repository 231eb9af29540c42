package common

import "strings"

// UnknownStr is the String form of out-of-range enum values.
const UnknownStr = "unknown"

// LastSegment returns the last element of a `::` separated path.
// Returns empty string if path is empty.
func LastSegment(path string) string {
	if path == "" {
		return ""
	}

	if i := strings.LastIndex(path, "::"); i >= 0 {
		return strings.TrimSpace(path[i+2:])
	}

	return strings.TrimSpace(path)
}
