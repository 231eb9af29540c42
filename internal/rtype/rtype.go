// Package rtype models Rust type expressions as they appear in source.
//
// Only one shape is recognized structurally: a reference `&'a mut T`.
// Everything else is kept as the verbatim token sequence the parser
// consumed. Reference-ness is purely syntactic; no alias or name
// resolution is performed.
package rtype

import (
	"binop-generator/internal/token"
)

// Type is a type expression.
type Type interface {
	// Tokens returns the type as a token stream.
	Tokens() token.Stream
	// String renders the type in Rust syntax.
	String() string

	isType()
}

// Ref is a reference type `&'lifetime mut Elem`.
type Ref struct {
	// Lifetime includes the leading quote. Empty when elided.
	Lifetime string
	Mut      bool
	Elem     Type
}

// Verbatim is any non-reference type, kept as written.
type Verbatim struct {
	Toks token.Stream
}

func (*Ref) isType()      {}
func (*Verbatim) isType() {}

func (r *Ref) Tokens() token.Stream {
	out := token.Stream{token.NewPunct('&', false)}
	if r.Lifetime != "" {
		out = append(out, token.NewLifetime(r.Lifetime))
	}

	if r.Mut {
		out = append(out, token.NewIdent("mut"))
	}

	elem := r.Elem.Tokens().Trimmed()
	if len(elem) > 0 && (r.Lifetime != "" || r.Mut) {
		elem[0].Lead = " "
	}

	return append(out, elem...)
}

func (r *Ref) String() string {
	s := "&"
	if r.Lifetime != "" {
		s += r.Lifetime + " "
	}

	if r.Mut {
		s += "mut "
	}

	return s + r.Elem.String()
}

func (v *Verbatim) Tokens() token.Stream {
	return v.Toks.Clone()
}

func (v *Verbatim) String() string {
	return v.Toks.String()
}

// WrapRef returns `&t`.
func WrapRef(t Type) Type {
	return &Ref{Elem: t}
}

// StripRef removes one level of reference. It reports false when t is not
// a reference, in which case the returned type is nil.
func StripRef(t Type) (Type, bool) {
	r, ok := t.(*Ref)
	if !ok {
		return nil, false
	}

	return r.Elem, true
}

// IsRef reports whether t is syntactically a reference.
func IsRef(t Type) bool {
	_, ok := t.(*Ref)
	return ok
}

// AsVerbatim reinterprets t as an opaque token sequence.
func AsVerbatim(t Type) Type {
	return &Verbatim{Toks: t.Tokens()}
}

// Clone returns a deep copy of t.
func Clone(t Type) Type {
	switch t := t.(type) {
	case *Ref:
		return &Ref{Lifetime: t.Lifetime, Mut: t.Mut, Elem: Clone(t.Elem)}
	case *Verbatim:
		return &Verbatim{Toks: t.Toks.Clone()}
	default:
		return nil
	}
}

// Key returns a trivia-insensitive rendering used for comparisons.
func Key(t Type) string {
	if t == nil {
		return ""
	}

	return t.Tokens().Canon()
}

// Equal reports whether a and b spell the same tokens. The comparison
// ignores whitespace and comments, and a Ref is equal to a Verbatim
// holding the same tokens.
func Equal(a, b Type) bool {
	return Key(a) == Key(b)
}
