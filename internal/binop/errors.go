package binop

import (
	"fmt"
	"strings"

	"binop-generator/internal/token"
)

// ParseError reports input that does not match the implementation grammar.
type ParseError struct {
	Pos token.Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// FlagError reports a malformed or unknown attribute option.
type FlagError struct {
	Pos token.Pos
	// Key is the offending option name, if one was read.
	Key string
	Msg string
	// Suggestion is the closest known option name, if any.
	Suggestion string
}

func (e *FlagError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean `%s`?)", e.Suggestion)
	}

	return msg
}

// InvariantError reports an Impl that cannot be derived from because it is
// malformed. It indicates a bug in whatever built the Impl, not bad input.
type InvariantError struct {
	Op        string
	Invariant string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal error in %s: invariant violated: %s", e.Op, e.Invariant)
}

// recoverInvariant turns an InvariantError panic into an error return.
// Other panics are re-raised.
func recoverInvariant(errp *error) {
	e := recover()
	if e == nil {
		return
	}

	ie, ok := e.(*InvariantError)
	if !ok {
		panic(e)
	}

	*errp = ie
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}

	return strings.Join(quoted, ", ")
}
