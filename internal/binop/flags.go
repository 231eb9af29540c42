package binop

import (
	"fmt"
	"strings"

	"binop-generator/internal/match"
	"binop-generator/internal/token"
)

// Option names accepted in the attribute argument list.
const (
	FlagCommute   = "commute"
	FlagRefsClone = "refs_clone"
	FlagDerefs    = "derefs"
	FlagDevPrint  = "dev_print"
)

// FlagNames lists the accepted option names.
var FlagNames = []string{FlagCommute, FlagRefsClone, FlagDerefs, FlagDevPrint}

// Flags selects the derivations Expand applies.
type Flags struct {
	Commute   bool
	RefsClone bool
	Derefs    bool
	// DevPrint writes a debug dump of the parsed implementation to the
	// trace writer. It does not change the output.
	DevPrint bool
}

// Any reports whether any derivation is requested.
func (f Flags) Any() bool {
	return f.Commute || f.RefsClone || f.Derefs
}

// String renders the set options in attribute syntax.
func (f Flags) String() string {
	var names []string

	for _, name := range FlagNames {
		if *f.field(name) {
			names = append(names, name)
		}
	}

	return strings.Join(names, ", ")
}

func (f *Flags) field(name string) *bool {
	switch name {
	case FlagCommute:
		return &f.Commute
	case FlagRefsClone:
		return &f.RefsClone
	case FlagDerefs:
		return &f.Derefs
	case FlagDevPrint:
		return &f.DevPrint
	default:
		return nil
	}
}

// ParseFlagsString lexes and parses an option list such as
// "commute, refs_clone = false".
func ParseFlagsString(src string) (Flags, error) {
	toks, err := token.Lex("", src)
	if err != nil {
		return Flags{}, err
	}

	return ParseFlags(toks, endPos(toks))
}

// ParseFlags parses a comma separated list of options. Each option is a
// bare name, which sets it, or `name = true|false`. end is reported for
// errors at the end of the list.
func ParseFlags(s token.Stream, end token.Pos) (Flags, error) {
	var f Flags

	c := token.NewCursor(s, end)
	seen := make(map[string]bool)

	for !c.EOF() {
		pos := c.Pos()

		t := c.Next()
		if t.Kind != token.Ident {
			return Flags{}, &FlagError{Pos: pos, Msg: fmt.Sprintf("expected option name, found %s", t.Describe())}
		}

		field := f.field(t.Text)
		if field == nil {
			fe := &FlagError{
				Pos: pos,
				Key: t.Text,
				Msg: fmt.Sprintf("unknown option `%s`; expected one of %s", t.Text, quoteList(FlagNames)),
			}

			if sug, ok := match.Suggest(t.Text, FlagNames); ok {
				fe.Suggestion = sug
			}

			return Flags{}, fe
		}

		if seen[t.Text] {
			return Flags{}, &FlagError{Pos: pos, Key: t.Text, Msg: fmt.Sprintf("option `%s` given more than once", t.Text)}
		}

		seen[t.Text] = true
		*field = true

		if c.IsPunct("=") && !c.IsPunct("==") {
			c.Next()

			vpos := c.Pos()

			v := c.Next()
			switch {
			case v.IsIdent("true"):
			case v.IsIdent("false"):
				*field = false
			default:
				return Flags{}, &FlagError{
					Pos: vpos,
					Key: t.Text,
					Msg: fmt.Sprintf("option `%s` takes `true` or `false`, found %s", t.Text, v.Describe()),
				}
			}
		}

		if c.EOF() {
			break
		}

		if !c.EatPunct(",") {
			return Flags{}, &FlagError{Pos: c.Pos(), Msg: fmt.Sprintf("expected `,` between options, found %s", c.Peek().Describe())}
		}
	}

	return f, nil
}
