package binop

import (
	"fmt"
	"slices"

	"binop-generator/internal/rtype"
	"binop-generator/internal/token"
)

//go:generate go tool stringer -type=Derivation -trimprefix=Derive -output=derivation_string.go

// Derivation names one transformation from an implementation to a new one.
type Derivation int

const (
	_ Derivation = iota

	DeriveCommute
	DeriveDerefLHS
	DeriveDerefRHS
	DeriveDerefBoth
	DeriveRefLHSClone
	DeriveRefRHSClone
	DeriveRefBothClone
)

// Derive applies d. It reports false when d's precondition does not hold;
// only the deref derivations have one.
func (b *Impl) Derive(d Derivation) (*Impl, bool) {
	switch d {
	case DeriveCommute:
		return b.Commute(), true
	case DeriveDerefLHS:
		return b.DerefLHS()
	case DeriveDerefRHS:
		return b.DerefRHS()
	case DeriveDerefBoth:
		return b.DerefBoth()
	case DeriveRefLHSClone:
		return b.RefLHSClone(), true
	case DeriveRefRHSClone:
		return b.RefRHSClone(), true
	case DeriveRefBothClone:
		return b.RefBothClone(), true
	default:
		return nil, false
	}
}

// delegate builds a method with the source's name and attributes whose
// body is the single expression expr.
func (b *Impl) delegate(argType rtype.Type, expr string) *Method {
	m := b.Method

	return &Method{
		Attrs:       slices.Clone(m.Attrs),
		Name:        m.Name,
		Receiver:    selfRecv,
		Arg:         DefaultArg,
		ArgType:     argType,
		Ret:         m.Ret,
		Body:        token.MustLex(fmt.Sprintf("{\n        %s\n    }", expr))[0],
		Synthesized: true,
	}
}

// Commute implements B op A by calling A op B with swapped operands.
func (b *Impl) Commute() *Impl {
	b.mustCheck(DeriveCommute.String())

	return b.with(implPatch{
		op:     DeriveCommute.String(),
		lhs:    b.RHS,
		rhs:    b.LHS,
		method: b.delegate(b.LHS, fmt.Sprintf("%s.%s(self)", DefaultArg, b.Method.Name)),
	})
}

// DerefLHS implements A op B for A = &T by T op B, borrowing the left
// operand. It reports false when A is not a reference.
func (b *Impl) DerefLHS() (*Impl, bool) {
	b.mustCheck(DeriveDerefLHS.String())

	lhs, ok := rtype.StripRef(b.LHS)
	if !ok {
		return nil, false
	}

	return b.with(implPatch{
		op:     DeriveDerefLHS.String(),
		lhs:    lhs,
		method: b.delegate(b.RHS, fmt.Sprintf("(&self).%s(%s)", b.Method.Name, DefaultArg)),
	}), true
}

// DerefRHS implements A op T for B = &T, borrowing the right operand. It
// reports false when B is not a reference.
func (b *Impl) DerefRHS() (*Impl, bool) {
	b.mustCheck(DeriveDerefRHS.String())

	rhs, ok := rtype.StripRef(b.RHS)
	if !ok {
		return nil, false
	}

	return b.with(implPatch{
		op:     DeriveDerefRHS.String(),
		rhs:    rhs,
		method: b.delegate(rhs, fmt.Sprintf("self.%s(&%s)", b.Method.Name, DefaultArg)),
	}), true
}

// DerefBoth borrows both operands. It reports false unless both are
// references.
func (b *Impl) DerefBoth() (*Impl, bool) {
	b.mustCheck(DeriveDerefBoth.String())

	lhs, lok := rtype.StripRef(b.LHS)
	rhs, rok := rtype.StripRef(b.RHS)

	if !lok || !rok {
		return nil, false
	}

	return b.with(implPatch{
		op:     DeriveDerefBoth.String(),
		lhs:    lhs,
		rhs:    rhs,
		method: b.delegate(rhs, fmt.Sprintf("(&self).%s(&%s)", b.Method.Name, DefaultArg)),
	}), true
}

// RefLHSClone implements &A op B by cloning the left operand.
func (b *Impl) RefLHSClone() *Impl {
	b.mustCheck(DeriveRefLHSClone.String())

	return b.with(implPatch{
		op:     DeriveRefLHSClone.String(),
		lhs:    rtype.WrapRef(b.LHS),
		method: b.delegate(b.RHS, fmt.Sprintf("self.clone().%s(%s)", b.Method.Name, DefaultArg)),
	})
}

// RefRHSClone implements A op &B by cloning the right operand.
func (b *Impl) RefRHSClone() *Impl {
	b.mustCheck(DeriveRefRHSClone.String())

	rhs := rtype.WrapRef(b.RHS)

	return b.with(implPatch{
		op:     DeriveRefRHSClone.String(),
		rhs:    rhs,
		method: b.delegate(rhs, fmt.Sprintf("self.%s(%s.clone())", b.Method.Name, DefaultArg)),
	})
}

// RefBothClone implements &A op &B by cloning both operands.
func (b *Impl) RefBothClone() *Impl {
	b.mustCheck(DeriveRefBothClone.String())

	rhs := rtype.WrapRef(b.RHS)

	return b.with(implPatch{
		op:     DeriveRefBothClone.String(),
		lhs:    rtype.WrapRef(b.LHS),
		rhs:    rhs,
		method: b.delegate(rhs, fmt.Sprintf("self.clone().%s(%s.clone())", b.Method.Name, DefaultArg)),
	})
}
