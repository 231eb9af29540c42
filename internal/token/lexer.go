package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error is a lexical error at a source position.
type Error struct {
	File string
	Pos  Pos
	Msg  string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, e.Msg)
	}

	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lex splits src into a token tree. file is only used in error messages.
func Lex(file, src string) (Stream, error) {
	lx := &lexer{file: file, src: src, line: 1, col: 1}
	if strings.HasPrefix(src, "\uFEFF") {
		lx.advance(len("\uFEFF"))
	}

	return lx.run()
}

// MustLex lexes a trusted snippet and panics if it is malformed.
func MustLex(src string) Stream {
	s, err := Lex("", src)
	if err != nil {
		panic(err)
	}

	return s
}

type lexer struct {
	file string
	src  string
	off  int
	line int
	col  int
}

type frame struct {
	open  Token
	items Stream
}

func (lx *lexer) run() (Stream, error) {
	stack := []*frame{{}}

	for {
		leadStart := lx.off

		err := lx.skipTrivia()
		if err != nil {
			return nil, err
		}

		lead := lx.src[leadStart:lx.off]
		top := stack[len(stack)-1]

		if lx.off >= len(lx.src) {
			if len(stack) > 1 {
				return nil, lx.errorAt(top.open.Pos, "unclosed delimiter `%s`", top.open.Delim.Open())
			}

			return top.items, nil
		}

		pos := lx.pos()
		c := lx.src[lx.off]

		switch c {
		case '(', '[', '{':
			lx.advance(1)
			stack = append(stack, &frame{open: Token{Kind: Group, Delim: delimOf(c), Lead: lead, Pos: pos}})

			continue
		case ')', ']', '}':
			if len(stack) == 1 {
				return nil, lx.errorAt(pos, "unexpected closing delimiter `%c`", c)
			}

			if top.open.Delim.Close()[0] != c {
				return nil, lx.errorAt(pos, "mismatched closing delimiter `%c`, `%s` opened at %s",
					c, top.open.Delim.Open(), top.open.Pos)
			}

			lx.advance(1)

			g := top.open
			g.Inner = top.items
			g.CloseLead = lead
			g.ClosePos = pos
			g.End = lx.off

			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.items = append(parent.items, g)

			continue
		}

		tok, err := lx.token()
		if err != nil {
			return nil, err
		}

		tok.Lead = lead
		tok.Pos = pos
		tok.End = lx.off
		top.items = append(top.items, tok)
	}
}

func delimOf(c byte) Delim {
	switch c {
	case '(':
		return Paren
	case '[':
		return Bracket
	default:
		return Brace
	}
}

func (lx *lexer) pos() Pos {
	return Pos{Offset: lx.off, Line: lx.line, Col: lx.col}
}

func (lx *lexer) errorAt(pos Pos, format string, args ...any) error {
	return &Error{File: lx.file, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) advance(n int) {
	for range n {
		if lx.off >= len(lx.src) {
			return
		}

		c := lx.src[lx.off]
		lx.off++

		switch {
		case c == '\n':
			lx.line++
			lx.col = 1
		case c&0xC0 != 0x80: // count runes, not continuation bytes
			lx.col++
		}
	}
}

func (lx *lexer) at(k int) byte {
	if lx.off+k >= len(lx.src) {
		return 0
	}

	return lx.src[lx.off+k]
}

func (lx *lexer) hasPrefix(p string) bool {
	return strings.HasPrefix(lx.src[lx.off:], p)
}

func (lx *lexer) isDocLine() bool {
	return lx.hasPrefix("//!") || (lx.hasPrefix("///") && !lx.hasPrefix("////"))
}

func (lx *lexer) isDocBlock() bool {
	return lx.hasPrefix("/*!") ||
		(lx.hasPrefix("/**") && !lx.hasPrefix("/***") && !lx.hasPrefix("/**/"))
}

func (lx *lexer) skipTrivia() error {
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			lx.advance(1)
		case lx.hasPrefix("//") && !lx.isDocLine():
			lx.skipLine()
		case lx.hasPrefix("/*") && !lx.isDocBlock():
			err := lx.skipBlockComment()
			if err != nil {
				return err
			}
		default:
			return nil
		}
	}

	return nil
}

func (lx *lexer) skipLine() {
	end := strings.IndexByte(lx.src[lx.off:], '\n')
	if end < 0 {
		end = len(lx.src) - lx.off
	}

	lx.advance(end)
}

func (lx *lexer) skipBlockComment() error {
	start := lx.pos()
	depth := 0

	for lx.off < len(lx.src) {
		switch {
		case lx.hasPrefix("/*"):
			depth++
			lx.advance(2)
		case lx.hasPrefix("*/"):
			depth--
			lx.advance(2)

			if depth == 0 {
				return nil
			}
		default:
			lx.advance(1)
		}
	}

	return lx.errorAt(start, "unterminated block comment")
}

func (lx *lexer) token() (Token, error) {
	start := lx.off
	c := lx.src[lx.off]

	switch {
	case lx.hasPrefix("//") || lx.hasPrefix("/*"):
		return lx.docComment()
	case c == '"':
		return lx.quoted(start, 0)
	case c == '\'':
		return lx.charOrLifetime(start)
	case isDigit(c):
		return lx.number(start)
	case c == 'r' && (lx.at(1) == '"' || (lx.at(1) == '#' && (lx.at(2) == '"' || lx.at(2) == '#'))):
		return lx.raw(start, 1)
	case c == 'r' && lx.at(1) == '#' && lx.identStartAt(2):
		lx.advance(2)
		lx.identTail()

		return Token{Kind: Ident, Text: lx.src[start:lx.off]}, nil
	case (c == 'b' || c == 'c') && lx.at(1) == '"':
		return lx.quoted(start, 1)
	case c == 'b' && lx.at(1) == '\'':
		lx.advance(1)
		return lx.charOrLifetime(start)
	case (c == 'b' || c == 'c') && lx.at(1) == 'r' && (lx.at(2) == '"' || lx.at(2) == '#'):
		return lx.raw(start, 2)
	case lx.identStartAt(0):
		lx.identTail()
		return Token{Kind: Ident, Text: lx.src[start:lx.off]}, nil
	case isPunctChar(c):
		lx.advance(1)

		joint := isPunctChar(lx.at(0)) && !lx.hasPrefix("//") && !lx.hasPrefix("/*")

		return Token{Kind: Punct, Text: string(c), Joint: joint}, nil
	default:
		r, _ := utf8.DecodeRuneInString(lx.src[lx.off:])
		return Token{}, lx.errorAt(lx.pos(), "unexpected character %q", r)
	}
}

func (lx *lexer) docComment() (Token, error) {
	start := lx.off

	if lx.hasPrefix("//") {
		lx.skipLine()

		return Token{Kind: DocComment, Text: lx.src[start:lx.off]}, nil
	}

	err := lx.skipBlockComment()
	if err != nil {
		return Token{}, err
	}

	return Token{Kind: DocComment, Text: lx.src[start:lx.off]}, nil
}

// quoted lexes a string literal with escapes. prefix is the length of a
// b or c prefix before the opening quote.
func (lx *lexer) quoted(start, prefix int) (Token, error) {
	pos := lx.pos()
	lx.advance(prefix + 1)

	for lx.off < len(lx.src) {
		switch lx.src[lx.off] {
		case '\\':
			lx.advance(2)
		case '"':
			lx.advance(1)
			lx.literalSuffix()

			return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
		default:
			lx.advance(1)
		}
	}

	return Token{}, lx.errorAt(pos, "unterminated string literal")
}

// raw lexes r"..", r#".."#, br"..", cr"..". prefix is the length before the hashes.
func (lx *lexer) raw(start, prefix int) (Token, error) {
	pos := lx.pos()
	lx.advance(prefix)

	hashes := 0
	for lx.at(0) == '#' {
		hashes++
		lx.advance(1)
	}

	if lx.at(0) != '"' {
		return Token{}, lx.errorAt(pos, "malformed raw string literal")
	}

	lx.advance(1)

	closing := "\"" + strings.Repeat("#", hashes)

	end := strings.Index(lx.src[lx.off:], closing)
	if end < 0 {
		return Token{}, lx.errorAt(pos, "unterminated raw string literal")
	}

	lx.advance(end + len(closing))
	lx.literalSuffix()

	return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
}

// charOrLifetime lexes 'x', '\n', b'x' or a lifetime such as 'a.
func (lx *lexer) charOrLifetime(start int) (Token, error) {
	pos := lx.pos()
	lx.advance(1) // opening quote

	if lx.at(0) == '\\' {
		for lx.off < len(lx.src) {
			switch lx.src[lx.off] {
			case '\\':
				lx.advance(2)
			case '\'':
				lx.advance(1)
				return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
			case '\n':
				return Token{}, lx.errorAt(pos, "unterminated character literal")
			default:
				lx.advance(1)
			}
		}

		return Token{}, lx.errorAt(pos, "unterminated character literal")
	}

	r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
	if size > 0 && lx.at(size) == '\'' {
		lx.advance(size + 1)
		return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
	}

	if lx.src[start] != 'b' && (r == '_' || unicode.IsLetter(r)) {
		lx.identTail()
		return Token{Kind: Lifetime, Text: lx.src[start:lx.off]}, nil
	}

	return Token{}, lx.errorAt(pos, "malformed character literal")
}

func (lx *lexer) number(start int) (Token, error) {
	if lx.at(0) == '0' && (lx.at(1) == 'x' || lx.at(1) == 'o' || lx.at(1) == 'b') {
		hex := lx.at(1) == 'x'
		lx.advance(2)

		for isDigit(lx.at(0)) || lx.at(0) == '_' || (hex && isHexLetter(lx.at(0))) {
			lx.advance(1)
		}

		lx.literalSuffix()

		return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
	}

	lx.digits()

	if lx.at(0) == '.' && isDigit(lx.at(1)) {
		lx.advance(1)
		lx.digits()
	} else if lx.at(0) == '.' && lx.at(1) != '.' && !lx.identStartAt(1) {
		lx.advance(1)
	}

	if (lx.at(0) == 'e' || lx.at(0) == 'E') &&
		(isDigit(lx.at(1)) || ((lx.at(1) == '+' || lx.at(1) == '-') && isDigit(lx.at(2)))) {
		lx.advance(2)
		lx.digits()
	}

	lx.literalSuffix()

	return Token{Kind: Literal, Text: lx.src[start:lx.off]}, nil
}

func (lx *lexer) digits() {
	for isDigit(lx.at(0)) || lx.at(0) == '_' {
		lx.advance(1)
	}
}

func (lx *lexer) literalSuffix() {
	if lx.identStartAt(0) {
		lx.identTail()
	}
}

func (lx *lexer) identStartAt(k int) bool {
	if lx.off+k >= len(lx.src) {
		return false
	}

	r, _ := utf8.DecodeRuneInString(lx.src[lx.off+k:])

	return r == '_' || unicode.IsLetter(r)
}

func (lx *lexer) identTail() {
	for lx.off < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}

		lx.advance(size)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexLetter(c byte) bool {
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isPunctChar(c byte) bool {
	return strings.IndexByte("=<>!~+-*/%^&|@.,;:#$?", c) >= 0
}
