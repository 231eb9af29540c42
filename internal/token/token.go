package token

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a token.
type Kind int

const (
	_ Kind = iota // zero value marks an uninitialized token

	Ident
	Lifetime
	Literal
	Punct
	DocComment
	Group
)

//go:generate go tool stringer -type=Delim -output=delim_string.go

// Delim is the delimiter of a Group token.
type Delim int

const (
	NoDelim Delim = iota
	Paren
	Bracket
	Brace
)

// Open returns the opening delimiter character.
func (d Delim) Open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	default:
		return ""
	}
}

// Close returns the closing delimiter character.
func (d Delim) Close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	default:
		return ""
	}
}

// Pos is a location in a source file. Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// IsValid reports whether the position came from a source file.
// Synthesized tokens carry the zero Pos.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexical token or a delimited group.
type Token struct {
	Kind Kind
	// Text is the token's source text. Empty for groups.
	Text string
	// Lead is the whitespace and non-doc comments preceding the token.
	Lead string
	Pos  Pos
	// End is the offset just past the token (past the closing delimiter for groups).
	End int
	// Joint is set on a Punct immediately followed by another Punct.
	Joint bool

	// Group fields.
	Delim     Delim
	Inner     Stream
	CloseLead string
	ClosePos  Pos
}

// Stream is an ordered sequence of tokens at one nesting level.
type Stream []Token

// NewIdent returns a synthesized identifier token.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Text: name}
}

// NewPunct returns a synthesized punctuation token.
func NewPunct(ch byte, joint bool) Token {
	return Token{Kind: Punct, Text: string(ch), Joint: joint}
}

// NewLifetime returns a synthesized lifetime token. name includes the quote.
func NewLifetime(name string) Token {
	return Token{Kind: Lifetime, Text: name}
}

// IsIdent reports whether t is the identifier name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsPunct reports whether t is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsGroup reports whether t is a group with delimiter d.
func (t Token) IsGroup(d Delim) bool {
	return t.Kind == Group && t.Delim == d
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case Group:
		return "`" + t.Delim.Open() + "...`"
	case DocComment:
		return "doc comment"
	case 0:
		return "end of input"
	default:
		return "`" + t.Text + "`"
	}
}

// String renders the token without its leading trivia.
func (t Token) String() string {
	var b strings.Builder
	t.write(&b)

	return b.String()
}

func (t Token) write(b *strings.Builder) {
	if t.Kind != Group {
		b.WriteString(t.Text)
		return
	}

	b.WriteString(t.Delim.Open())
	t.Inner.write(b, true)
	b.WriteString(t.CloseLead)
	b.WriteString(t.Delim.Close())
}

// String renders the stream, dropping the leading trivia of its first token.
func (s Stream) String() string {
	var b strings.Builder
	s.write(&b, false)

	return b.String()
}

// Source renders the stream including the leading trivia of its first token.
func (s Stream) Source() string {
	var b strings.Builder
	s.write(&b, true)

	return b.String()
}

func (s Stream) write(b *strings.Builder, leadFirst bool) {
	for i, t := range s {
		if t.Pos.IsValid() || t.Lead != "" {
			if i > 0 || leadFirst {
				b.WriteString(t.Lead)
			}
		} else if i > 0 && needSpace(s[i-1], t) {
			b.WriteByte(' ')
		}

		t.write(b)
	}
}

// needSpace decides spacing between synthesized tokens that carry no trivia.
func needSpace(prev, cur Token) bool {
	return isWordLike(prev) && isWordLike(cur)
}

func isWordLike(t Token) bool {
	return t.Kind == Ident || t.Kind == Lifetime || t.Kind == Literal
}

// Canon renders the stream with single spaces between tokens and no trivia.
// Two streams with equal Canon forms are the same token sequence.
func (s Stream) Canon() string {
	parts := make([]string, 0, len(s))
	for _, t := range s {
		parts = append(parts, t.Canon())
	}

	return strings.Join(parts, " ")
}

// Canon renders a single token in canonical form.
func (t Token) Canon() string {
	if t.Kind != Group {
		return t.Text
	}

	if len(t.Inner) == 0 {
		return t.Delim.Open() + t.Delim.Close()
	}

	return t.Delim.Open() + " " + t.Inner.Canon() + " " + t.Delim.Close()
}

// Clone returns a deep copy of the stream.
func (s Stream) Clone() Stream {
	if s == nil {
		return nil
	}

	out := make(Stream, len(s))
	for i, t := range s {
		if t.Kind == Group {
			t.Inner = t.Inner.Clone()
		}

		out[i] = t
	}

	return out
}

// Trimmed returns a copy of the stream whose first token has no lead.
func (s Stream) Trimmed() Stream {
	out := s.Clone()
	if len(out) > 0 {
		out[0].Lead = ""
	}

	return out
}
