package token

// Cursor walks one level of a token stream.
type Cursor struct {
	toks Stream
	i    int
	end  Pos
}

// NewCursor returns a cursor over s. end is reported as the position of
// the end of input, usually the closing delimiter of the enclosing group.
func NewCursor(s Stream, end Pos) *Cursor {
	return &Cursor{toks: s, end: end}
}

// EOF reports whether all tokens have been consumed.
func (c *Cursor) EOF() bool {
	return c.i >= len(c.toks)
}

// Peek returns the next token, or the zero Token at end of input.
func (c *Cursor) Peek() Token {
	return c.PeekN(0)
}

// PeekN returns the token n positions ahead.
func (c *Cursor) PeekN(n int) Token {
	if c.i+n >= len(c.toks) {
		return Token{}
	}

	return c.toks[c.i+n]
}

// Next consumes and returns the next token.
func (c *Cursor) Next() Token {
	t := c.Peek()
	if !c.EOF() {
		c.i++
	}

	return t
}

// Pos returns the position of the next token or of the end of input.
func (c *Cursor) Pos() Pos {
	if c.EOF() {
		return c.end
	}

	return c.toks[c.i].Pos
}

// Mark returns the current index for use with Since.
func (c *Cursor) Mark() int {
	return c.i
}

// Since returns the tokens consumed after mark.
func (c *Cursor) Since(mark int) Stream {
	return c.toks[mark:c.i]
}

// IsIdent reports whether the next token is the identifier name.
func (c *Cursor) IsIdent(name string) bool {
	return c.Peek().IsIdent(name)
}

// IsPunct reports whether the next tokens spell op, with every character
// but the last joined to its successor.
func (c *Cursor) IsPunct(op string) bool {
	for k := range len(op) {
		t := c.PeekN(k)
		if !t.IsPunct(op[k]) {
			return false
		}

		if k < len(op)-1 && !t.Joint {
			return false
		}
	}

	return len(op) > 0
}

// IsGroup reports whether the next token is a group with delimiter d.
func (c *Cursor) IsGroup(d Delim) bool {
	return c.Peek().IsGroup(d)
}

// EatIdent consumes the identifier name if it is next.
func (c *Cursor) EatIdent(name string) bool {
	if !c.IsIdent(name) {
		return false
	}

	c.i++

	return true
}

// EatPunct consumes op if it is next.
func (c *Cursor) EatPunct(op string) bool {
	if !c.IsPunct(op) {
		return false
	}

	c.i += len(op)

	return true
}
