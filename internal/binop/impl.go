package binop

import (
	"slices"

	"binop-generator/internal/rtype"
	"binop-generator/internal/token"
)

// Defaults for syntax the derivations synthesize.
const (
	OutputIdent = "Output"
	DefaultArg  = "rhs"
	selfRecv    = "self"
	mutSelfRecv = "mut self"
)

// Attr is an outer attribute or doc comment, kept verbatim.
type Attr struct {
	Toks token.Stream
}

func (a Attr) String() string {
	return a.Toks.String()
}

// Generics holds the generic parameters of the impl and its where clause.
// Both are kept verbatim and copied unchanged by every derivation.
type Generics struct {
	// Params are the tokens between the angle brackets of `impl<...>`.
	Params token.Stream
	// Where are the predicates after `where`. HasWhere tells an empty
	// clause apart from a missing one.
	Where    token.Stream
	HasWhere bool
}

func (g Generics) clone() Generics {
	return Generics{Params: g.Params.Clone(), Where: g.Where.Clone(), HasWhere: g.HasWhere}
}

// Output is the associated result type declaration `type Output = T;`.
type Output struct {
	Ident string
	Type  rtype.Type
}

// NewOutput declares `type Output = ty;`.
func NewOutput(ty rtype.Type) (*Output, error) {
	return newOutput(OutputIdent, ty)
}

func newOutput(ident string, ty rtype.Type) (*Output, error) {
	o := &Output{Ident: ident, Type: ty}
	if msg := o.check(); msg != "" {
		return nil, &InvariantError{Op: "NewOutput", Invariant: msg}
	}

	return o, nil
}

func (o *Output) check() string {
	switch {
	case o.Ident == "":
		return "output declaration has no name"
	case o.Type == nil:
		return "output declaration has no type"
	default:
		return ""
	}
}

// Method is the operator method `fn op(self, rhs: B) -> R { body }`.
// The body is opaque and only ever replaced as a whole.
type Method struct {
	Attrs []Attr
	Name  string
	// Receiver is "self" or "mut self".
	Receiver string
	// Arg is the argument pattern, e.g. "rhs" or "mut other".
	Arg     string
	ArgType rtype.Type
	Ret     rtype.Type
	// Body is a brace group.
	Body token.Token
	// Synthesized marks a body generated at column 0 rather than read
	// from source; only such bodies are re-indented on output.
	Synthesized bool
}

// NewMethod builds a method. Empty recv and arg default to "self" and
// "rhs"; a nil ret defaults to `Self::Output`.
func NewMethod(attrs []Attr, name, recv, arg string, argType, ret rtype.Type, body token.Token) (*Method, error) {
	if recv == "" {
		recv = selfRecv
	}

	if arg == "" {
		arg = DefaultArg
	}

	if ret == nil {
		ret = selfOutput()
	}

	m := &Method{
		Attrs:    attrs,
		Name:     name,
		Receiver: recv,
		Arg:      arg,
		ArgType:  argType,
		Ret:      ret,
		Body:     body,
	}

	if msg := m.check(); msg != "" {
		return nil, &InvariantError{Op: "NewMethod", Invariant: msg}
	}

	return m, nil
}

func selfOutput() rtype.Type {
	return &rtype.Verbatim{Toks: token.MustLex("Self::Output")}
}

func (m *Method) check() string {
	switch {
	case m.Name == "":
		return "method has no name"
	case m.Receiver != selfRecv && m.Receiver != mutSelfRecv:
		return "method receiver is not taken by value"
	case m.Arg == "":
		return "method argument has no pattern"
	case m.ArgType == nil:
		return "method argument has no type"
	case m.Ret == nil:
		return "method has no return type"
	case !m.Body.IsGroup(token.Brace):
		return "method body is not a block"
	default:
		return ""
	}
}

// Impl is one binary operation implementation. Values are never modified
// after construction; derivations return new values.
type Impl struct {
	Attrs    []Attr
	Generics Generics
	// Trait is the mod-style trait path, e.g. `std::ops::Add`.
	Trait token.Stream
	// LHS is the implementing type (`for` type).
	LHS rtype.Type
	// RHS is the trait's type argument.
	RHS    rtype.Type
	Output *Output
	Method *Method
}

// NewImpl builds an implementation. A nil rhs defaults to a copy of lhs,
// following the `Rhs = Self` default of the operator traits.
func NewImpl(attrs []Attr, g Generics, trait token.Stream, lhs, rhs rtype.Type, out *Output, m *Method) (*Impl, error) {
	if rhs == nil && lhs != nil {
		rhs = rtype.Clone(lhs)
	}

	b := &Impl{
		Attrs:    attrs,
		Generics: g,
		Trait:    trait,
		LHS:      lhs,
		RHS:      rhs,
		Output:   out,
		Method:   m,
	}

	if msg := b.check(); msg != "" {
		return nil, &InvariantError{Op: "NewImpl", Invariant: msg}
	}

	return b, nil
}

func (b *Impl) check() string {
	switch {
	case b == nil:
		return "implementation is nil"
	case len(b.Trait) == 0:
		return "trait path is empty"
	case b.LHS == nil:
		return "left operand type is missing"
	case b.RHS == nil:
		return "right operand type is missing"
	case b.Output == nil:
		return "output declaration is missing"
	case b.Method == nil:
		return "method is missing"
	}

	if msg := b.Output.check(); msg != "" {
		return msg
	}

	return b.Method.check()
}

// implPatch names the fields a derivation replaces. Nil fields keep the
// source value.
type implPatch struct {
	op     string
	lhs    rtype.Type
	rhs    rtype.Type
	method *Method
}

// mustCheck panics with an InvariantError when b is malformed.
func (b *Impl) mustCheck(op string) {
	if msg := b.check(); msg != "" {
		panic(&InvariantError{Op: op, Invariant: msg})
	}
}

// with copies b field by field, applying p.
func (b *Impl) with(p implPatch) *Impl {
	b.mustCheck(p.op)

	out := &Impl{
		Attrs:    slices.Clone(b.Attrs),
		Generics: b.Generics.clone(),
		Trait:    b.Trait.Clone(),
		LHS:      b.LHS,
		RHS:      b.RHS,
		Output:   &Output{Ident: b.Output.Ident, Type: b.Output.Type},
		Method:   b.Method,
	}

	if p.lhs != nil {
		out.LHS = p.lhs
	}

	if p.rhs != nil {
		out.RHS = p.rhs
	}

	if p.method != nil {
		out.Method = p.method
	}

	return out
}
