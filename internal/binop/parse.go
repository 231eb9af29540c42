package binop

import (
	"fmt"
	"strings"

	"binop-generator/internal/rtype"
	"binop-generator/internal/token"
)

// keywords cannot begin a type path.
var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "else": true, "enum": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true, "ref": true, "return": true, "static": true, "struct": true,
	"trait": true, "true": true, "type": true, "unsafe": true, "use": true,
	"where": true, "while": true, "dyn": true, "extern": true,
}

// Parse reads exactly one implementation from s.
func Parse(s token.Stream) (*Impl, error) {
	p := &parser{c: token.NewCursor(s, endPos(s))}

	return p.impl()
}

// ParseString lexes src and parses one implementation from it. file is
// used in lexer error messages.
func ParseString(file, src string) (*Impl, error) {
	toks, err := token.Lex(file, src)
	if err != nil {
		return nil, err
	}

	return Parse(toks)
}

func endPos(s token.Stream) token.Pos {
	if len(s) == 0 {
		return token.Pos{Line: 1, Col: 1}
	}

	last := s[len(s)-1]
	if last.Kind == token.Group {
		return last.ClosePos
	}

	return token.Pos{Offset: last.End, Line: last.Pos.Line, Col: last.Pos.Col + len([]rune(last.Text))}
}

type parser struct {
	c *token.Cursor
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.c.Pos(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expected(what string) error {
	return p.errorf("expected %s, found %s", what, p.c.Peek().Describe())
}

func (p *parser) expectIdent(name string) error {
	if !p.c.EatIdent(name) {
		return p.expected("`" + name + "`")
	}

	return nil
}

func (p *parser) expectPunct(op string) error {
	if !p.c.EatPunct(op) {
		return p.expected("`" + op + "`")
	}

	return nil
}

// single reports whether the token n ahead is the lone punctuation ch,
// not the first half of a two-character operator starting with ch.
func (p *parser) single(n int, ch byte) bool {
	t := p.c.PeekN(n)
	if !t.IsPunct(ch) {
		return false
	}

	return !t.Joint || !p.c.PeekN(n+1).IsPunct(ch)
}

func (p *parser) startsPathSegment() bool {
	t := p.c.Peek()
	return t.Kind == token.Ident && !keywords[t.Text]
}

func (p *parser) impl() (*Impl, error) {
	attrs, err := p.attrs()
	if err != nil {
		return nil, err
	}

	if err := p.expectIdent("impl"); err != nil {
		return nil, err
	}

	var g Generics
	if p.c.IsPunct("<") {
		if g.Params, err = p.angled("generic parameter list"); err != nil {
			return nil, err
		}
	}

	trait, err := p.modPath()
	if err != nil {
		return nil, err
	}

	rhs, err := p.traitArg()
	if err != nil {
		return nil, err
	}

	if err := p.expectIdent("for"); err != nil {
		return nil, err
	}

	lhs, err := p.typ()
	if err != nil {
		return nil, err
	}

	if p.c.EatIdent("where") {
		g.HasWhere = true
		if g.Where, err = p.where(); err != nil {
			return nil, err
		}
	}

	if !p.c.IsGroup(token.Brace) {
		return nil, p.expected("`{`")
	}

	body := p.c.Next()
	if !p.c.EOF() {
		return nil, p.errorf("unexpected %s after the implementation body", p.c.Peek().Describe())
	}

	inner := &parser{c: token.NewCursor(body.Inner, body.ClosePos)}

	out, err := inner.output()
	if err != nil {
		return nil, err
	}

	m, err := inner.method()
	if err != nil {
		return nil, err
	}

	if !inner.c.EOF() {
		return nil, inner.errorf("unexpected %s after the method; the implementation must hold exactly one `type` and one `fn`",
			inner.c.Peek().Describe())
	}

	return NewImpl(attrs, g, trait, lhs, rhs, out, m)
}

func (p *parser) attrs() ([]Attr, error) {
	var attrs []Attr

	for {
		t := p.c.Peek()

		switch {
		case t.Kind == token.DocComment:
			if strings.HasPrefix(t.Text, "//!") || strings.HasPrefix(t.Text, "/*!") {
				return nil, p.errorf("inner doc comments are not allowed here")
			}

			attrs = append(attrs, Attr{Toks: token.Stream{p.c.Next()}})
		case t.IsPunct('#') && p.c.PeekN(1).IsGroup(token.Bracket):
			hash := p.c.Next()
			attrs = append(attrs, Attr{Toks: token.Stream{hash, p.c.Next()}})
		case t.IsPunct('#') && p.c.PeekN(1).IsPunct('!'):
			return nil, p.errorf("inner attributes are not allowed here")
		default:
			return attrs, nil
		}
	}
}

// angled consumes a balanced `<...>` and returns the tokens between the
// brackets. The `>` of `->` does not close.
func (p *parser) angled(what string) (token.Stream, error) {
	start := p.c.Pos()
	p.c.Next()
	mark := p.c.Mark()
	depth := 1

	var prev token.Token

	for !p.c.EOF() {
		t := p.c.Peek()

		switch {
		case t.IsPunct('<'):
			depth++
		case t.IsPunct('>') && !(prev.IsPunct('-') && prev.Joint):
			depth--
			if depth == 0 {
				inner := p.c.Since(mark)
				p.c.Next()

				return inner, nil
			}
		}

		prev = p.c.Next()
	}

	return nil, &ParseError{Pos: start, Msg: "unclosed " + what}
}

// modPath reads a trait path of identifiers joined by `::`.
func (p *parser) modPath() (token.Stream, error) {
	mark := p.c.Mark()
	p.c.EatPunct("::")

	for {
		if !p.startsPathSegment() {
			return nil, p.expected("trait path")
		}

		p.c.Next()

		if !p.c.IsPunct("::") || p.c.PeekN(2).Kind != token.Ident {
			break
		}

		p.c.EatPunct("::")
	}

	return p.c.Since(mark).Trimmed(), nil
}

// traitArg reads the optional `<Rhs>` after the trait path. It returns
// nil when the argument is omitted.
func (p *parser) traitArg() (rtype.Type, error) {
	if !p.c.EatPunct("<") {
		return nil, nil
	}

	if p.c.EatPunct(">") {
		return nil, nil
	}

	rhs, err := p.typ()
	if err != nil {
		return nil, err
	}

	if p.c.IsPunct(",") {
		return nil, p.errorf("the operator trait takes exactly one type argument")
	}

	if err := p.expectPunct(">"); err != nil {
		return nil, err
	}

	return rhs, nil
}

// where consumes the where predicates up to the implementation body.
func (p *parser) where() (token.Stream, error) {
	mark := p.c.Mark()
	depth := 0

	var prev token.Token

	for !p.c.EOF() {
		t := p.c.Peek()

		switch {
		case t.IsGroup(token.Brace) && depth == 0:
			return p.c.Since(mark), nil
		case t.IsPunct('<'):
			depth++
		case t.IsPunct('>') && !(prev.IsPunct('-') && prev.Joint) && depth > 0:
			depth--
		}

		prev = p.c.Next()
	}

	return nil, p.expected("`{`")
}

func (p *parser) output() (*Output, error) {
	if t := p.c.Peek(); t.Kind == token.DocComment || t.IsPunct('#') {
		return nil, p.errorf("attributes on the associated type are not supported")
	}

	if p.c.IsIdent("fn") {
		return nil, p.errorf("expected `type Output = ...;` before the method")
	}

	if err := p.expectIdent("type"); err != nil {
		return nil, err
	}

	name := p.c.Peek()
	if name.Kind != token.Ident {
		return nil, p.expected("associated type name")
	}

	p.c.Next()

	if p.c.IsPunct("<") {
		return nil, p.errorf("generic associated types are not supported")
	}

	if err := p.expectPunct("="); err != nil {
		return nil, err
	}

	ty, err := p.typ()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return newOutput(name.Text, ty)
}

func (p *parser) method() (*Method, error) {
	if p.c.EOF() {
		return nil, p.expected("`fn`")
	}

	attrs, err := p.attrs()
	if err != nil {
		return nil, err
	}

	if p.c.IsIdent("type") {
		return nil, p.errorf("the implementation must hold exactly one `type` declaration")
	}

	if err := p.expectIdent("fn"); err != nil {
		return nil, err
	}

	name := p.c.Peek()
	if name.Kind != token.Ident {
		return nil, p.expected("method name")
	}

	p.c.Next()

	if p.c.IsPunct("<") {
		return nil, p.errorf("generic methods are not supported")
	}

	if !p.c.IsGroup(token.Paren) {
		return nil, p.expected("`(`")
	}

	params := p.c.Next()
	pp := &parser{c: token.NewCursor(params.Inner, params.ClosePos)}

	recv, arg, argType, err := pp.params()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct("->"); err != nil {
		return nil, err
	}

	ret, err := p.typ()
	if err != nil {
		return nil, err
	}

	if p.c.IsIdent("where") {
		return nil, p.errorf("where clauses on the method are not supported")
	}

	if !p.c.IsGroup(token.Brace) {
		return nil, p.expected("method body")
	}

	return NewMethod(attrs, name.Text, recv, arg, argType, ret, p.c.Next())
}

// params reads `self, pat: Type`.
func (p *parser) params() (recv, arg string, ty rtype.Type, err error) {
	switch {
	case p.c.IsIdent("self"):
		p.c.Next()

		recv = selfRecv
	case p.c.IsIdent("mut") && p.c.PeekN(1).IsIdent("self"):
		p.c.Next()
		p.c.Next()

		recv = mutSelfRecv
	case p.c.IsPunct("&"):
		return "", "", nil, p.errorf("the receiver must be `self` taken by value")
	default:
		return "", "", nil, p.expected("`self`")
	}

	if p.single(0, ':') {
		return "", "", nil, p.errorf("typed receivers are not supported; use `self`")
	}

	if !p.c.EatPunct(",") {
		return "", "", nil, p.expected("`,` and a right-hand argument")
	}

	// The argument pattern runs to the `:` that is not half of a `::`.
	mark := p.c.Mark()
	for !p.c.EOF() && !p.single(0, ':') && !p.c.IsPunct(",") {
		if p.c.IsPunct(":") {
			p.c.Next()
		}

		p.c.Next()
	}

	if arg = p.c.Since(mark).String(); arg == "" {
		return "", "", nil, p.expected("argument pattern")
	}

	if !p.single(0, ':') {
		return "", "", nil, p.expected("`:`")
	}

	p.c.Next()

	if ty, err = p.typ(); err != nil {
		return "", "", nil, err
	}

	p.c.EatPunct(",")

	if !p.c.EOF() {
		return "", "", nil, p.errorf("expected exactly two parameters, found %s", p.c.Peek().Describe())
	}

	return recv, arg, ty, nil
}

// typ reads a type. Leading references become Ref values; the rest is
// kept verbatim.
func (p *parser) typ() (rtype.Type, error) {
	if p.c.EatPunct("&") {
		ref := &rtype.Ref{}
		if t := p.c.Peek(); t.Kind == token.Lifetime {
			ref.Lifetime = t.Text
			p.c.Next()
		}

		ref.Mut = p.c.EatIdent("mut")

		elem, err := p.typ()
		if err != nil {
			return nil, err
		}

		ref.Elem = elem

		return ref, nil
	}

	mark := p.c.Mark()
	if err := p.skipType(); err != nil {
		return nil, err
	}

	return &rtype.Verbatim{Toks: p.c.Since(mark).Trimmed()}, nil
}

// skipType consumes one type without building it.
func (p *parser) skipType() error {
	t := p.c.Peek()

	switch {
	case t.IsPunct('&'):
		p.c.Next()

		if p.c.Peek().Kind == token.Lifetime {
			p.c.Next()
		}

		p.c.EatIdent("mut")

		return p.skipType()
	case t.IsPunct('*'):
		p.c.Next()

		if !p.c.EatIdent("const") && !p.c.EatIdent("mut") {
			return p.expected("`const` or `mut`")
		}

		return p.skipType()
	case t.IsPunct('!'):
		p.c.Next()
		return nil
	case t.IsPunct('<'):
		return p.skipQualifiedPath()
	case p.c.IsPunct("::"):
		return p.skipPath()
	case t.IsGroup(token.Paren), t.IsGroup(token.Bracket):
		p.c.Next()
		return nil
	case t.IsIdent("impl"), t.IsIdent("dyn"):
		p.c.Next()
		return p.skipBounds()
	case t.IsIdent("fn"), t.IsIdent("unsafe"), t.IsIdent("extern"):
		return p.skipFnPtr()
	case t.IsIdent("for"):
		p.c.Next()

		if !p.c.IsPunct("<") {
			return p.expected("`<`")
		}

		if _, err := p.angled("lifetime binder"); err != nil {
			return err
		}

		return p.skipType()
	case p.startsPathSegment():
		if err := p.skipPath(); err != nil {
			return err
		}

		// type macro
		if p.c.IsPunct("!") && p.c.PeekN(1).Kind == token.Group {
			p.c.Next()
			p.c.Next()
		}

		return nil
	default:
		return p.expected("type")
	}
}

func (p *parser) skipPath() error {
	p.c.EatPunct("::")

	for {
		if !p.startsPathSegment() {
			return p.expected("path segment")
		}

		p.c.Next()

		switch {
		case p.c.IsPunct("<"):
			if err := p.skipGenericArgs(); err != nil {
				return err
			}
		case p.c.IsPunct("::") && p.c.PeekN(2).IsPunct('<'):
			p.c.EatPunct("::")

			if err := p.skipGenericArgs(); err != nil {
				return err
			}
		case p.c.IsGroup(token.Paren):
			// Fn(A) -> B sugar
			p.c.Next()

			if p.c.EatPunct("->") {
				return p.skipType()
			}
		}

		if !p.c.IsPunct("::") || p.c.PeekN(2).Kind != token.Ident {
			return nil
		}

		p.c.EatPunct("::")
	}
}

func (p *parser) skipGenericArgs() error {
	if err := p.expectPunct("<"); err != nil {
		return err
	}

	for !p.c.EatPunct(">") {
		if err := p.skipGenericArg(); err != nil {
			return err
		}

		if p.c.EatPunct(",") {
			continue
		}

		if !p.c.IsPunct(">") {
			return p.expected("`,` or `>`")
		}
	}

	return nil
}

func (p *parser) skipGenericArg() error {
	t := p.c.Peek()

	switch {
	case t.Kind == token.Lifetime, t.Kind == token.Literal, t.IsGroup(token.Brace):
		p.c.Next()
		return nil
	case t.IsPunct('-') && p.c.PeekN(1).Kind == token.Literal:
		p.c.Next()
		p.c.Next()

		return nil
	case t.Kind == token.Ident && p.single(1, '='):
		// associated type binding
		p.c.Next()
		p.c.Next()

		return p.skipType()
	case t.Kind == token.Ident && p.single(1, ':'):
		// associated type bound
		p.c.Next()
		p.c.Next()

		return p.skipBounds()
	default:
		return p.skipType()
	}
}

func (p *parser) skipBounds() error {
	for {
		if err := p.skipBound(); err != nil {
			return err
		}

		if !p.c.EatPunct("+") {
			return nil
		}
	}
}

func (p *parser) skipBound() error {
	t := p.c.Peek()

	switch {
	case t.Kind == token.Lifetime, t.IsGroup(token.Paren):
		p.c.Next()
		return nil
	}

	p.c.EatPunct("?")

	if p.c.EatIdent("for") {
		if !p.c.IsPunct("<") {
			return p.expected("`<`")
		}

		if _, err := p.angled("lifetime binder"); err != nil {
			return err
		}
	}

	if p.c.IsPunct("::") || p.startsPathSegment() {
		return p.skipPath()
	}

	return p.expected("trait bound")
}

func (p *parser) skipFnPtr() error {
	p.c.EatIdent("unsafe")

	if p.c.EatIdent("extern") && p.c.Peek().Kind == token.Literal {
		p.c.Next()
	}

	if err := p.expectIdent("fn"); err != nil {
		return err
	}

	if !p.c.IsGroup(token.Paren) {
		return p.expected("`(`")
	}

	p.c.Next()

	if p.c.EatPunct("->") {
		return p.skipType()
	}

	return nil
}

func (p *parser) skipQualifiedPath() error {
	p.c.Next()

	if err := p.skipType(); err != nil {
		return err
	}

	if p.c.EatIdent("as") {
		if err := p.skipPath(); err != nil {
			return err
		}
	}

	if err := p.expectPunct(">"); err != nil {
		return err
	}

	if !p.c.IsPunct("::") {
		return p.expected("`::`")
	}

	return p.skipPath()
}
